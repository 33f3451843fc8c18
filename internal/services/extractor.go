package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/hiring-assistant/internal/logger"
)

const (
	defaultMaxUploadSize int64 = 8 << 20
	maxConverterOutput         = 6 << 20
)

// CommandRunner executes an external converter and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

type ExtractorOptions struct {
	MaxSize int64
	TempDir string
	Runner  CommandRunner
	// DisableBuiltin turns off the in-process PDF and DOCX converters.
	DisableBuiltin bool
}

type converter struct {
	name string
	run  func(ctx context.Context, path string) (string, error)
}

// ResumeExtractor converts PDF, DOC and DOCX uploads to plain text.
type ResumeExtractor struct {
	maxSize    int64
	storage    *TempStorage
	runner     CommandRunner
	converters map[string][]converter
	log        *zap.Logger
}

func NewResumeExtractor(opts ExtractorOptions, log *zap.Logger) *ResumeExtractor {
	e := &ResumeExtractor{
		maxSize: opts.MaxSize,
		storage: NewTempStorage(opts.TempDir),
		runner:  opts.Runner,
		log:     logger.OrNop(log),
	}
	if e.maxSize <= 0 {
		e.maxSize = defaultMaxUploadSize
	}
	if e.runner == nil {
		e.runner = execRunner
	}

	pdfParser := NewPDFParser()

	e.converters = map[string][]converter{
		".pdf": {
			e.command("pdftotext", func(p string) []string { return []string{p, "-"} }, nil),
		},
		".doc": {
			e.command("antiword", func(p string) []string { return []string{p} }, nil),
			e.command("catdoc", func(p string) []string { return []string{p} }, nil),
		},
		".docx": {
			e.command("unzip", func(p string) []string { return []string{"-p", p, "word/document.xml"} }, stripXMLTags),
		},
	}

	if !opts.DisableBuiltin {
		e.converters[".pdf"] = append(e.converters[".pdf"], converter{
			name: "builtin-pdf",
			run: func(_ context.Context, path string) (string, error) {
				return pdfParser.ExtractText(path)
			},
		})
		e.converters[".docx"] = append(e.converters[".docx"], converter{
			name: "builtin-docx",
			run: func(_ context.Context, path string) (string, error) {
				xml, err := readDocxXML(path)
				if err != nil {
					return "", err
				}
				return stripXMLTags(xml), nil
			},
		})
	}

	return e
}

// SupportedExtension reports whether name has a convertible extension.
func SupportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".doc", ".docx":
		return true
	}
	return false
}

// Extract reads at most MaxSize bytes from r and returns the text of the
// first converter that produces any. The temporary copy is always removed.
func (e *ResumeExtractor) Extract(ctx context.Context, fileName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > e.maxSize {
		return "", &TooLargeError{Limit: e.maxSize}
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	converters, ok := e.converters[ext]
	if !ok {
		return "", fmt.Errorf("%q: %w", fileName, ErrUnsupportedFormat)
	}

	path, err := e.storage.Save(ext, data)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := e.storage.Remove(path); err != nil {
			e.log.Warn("failed to remove temp file", zap.String("path", path), zap.Error(err))
		}
	}()

	for _, conv := range converters {
		text, err := conv.run(ctx, path)
		if err != nil {
			e.log.Debug("converter failed", zap.String("converter", conv.name), zap.Error(err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			e.log.Debug("resume extracted", zap.String("converter", conv.name), zap.Int("chars", len(text)))
			return text, nil
		}
	}

	return "", fmt.Errorf("%q: %w", fileName, ErrExtractionFailed)
}

func (e *ResumeExtractor) command(bin string, args func(path string) []string, post func(string) string) converter {
	return converter{
		name: bin,
		run: func(ctx context.Context, path string) (string, error) {
			out, err := e.runner(ctx, bin, args(path)...)
			if err != nil {
				return "", err
			}
			text := strings.TrimSpace(string(out))
			if text == "" || post == nil {
				return text, nil
			}
			return post(text), nil
		},
	}
}

var errOutputTooLarge = errors.New("converter output exceeds limit")

// limitedBuffer fails writes once max bytes are buffered.
type limitedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > b.max {
		return 0, errOutputTooLarge
	}
	return b.buf.Write(p)
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, err
	}

	stdout := &limitedBuffer{max: maxConverterOutput}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.buf.Bytes(), nil
}

func readDocxXML(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		raw, err := io.ReadAll(io.LimitReader(rc, maxConverterOutput+1))
		if err != nil {
			return "", err
		}
		if len(raw) > maxConverterOutput {
			return "", errOutputTooLarge
		}
		return string(raw), nil
	}

	return "", fmt.Errorf("word/document.xml not found")
}

var (
	paragraphTag  = regexp.MustCompile(`<w:p[^>]*>`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	horizontalWS  = regexp.MustCompile(`[^\S\n]+`)
	lineEdgeWS    = regexp.MustCompile(` ?\n ?`)
	repeatedBreak = regexp.MustCompile(`\n{2,}`)
	xmlEntities   = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

// stripXMLTags turns WordprocessingML into plain text. Every <w:p> starts a
// new line; other tags become spaces.
func stripXMLTags(xml string) string {
	s := paragraphTag.ReplaceAllString(xml, "\n")
	s = anyTag.ReplaceAllString(s, " ")
	s = xmlEntities.Replace(s)
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = horizontalWS.ReplaceAllString(s, " ")
	s = lineEdgeWS.ReplaceAllString(s, "\n")
	s = repeatedBreak.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
