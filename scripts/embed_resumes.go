// Command embed_resumes extracts and embeds resume files and prints a JSON
// document whose existingEmbeddings can be sent to /api/v1/ai/duplicate-check.
//
//	go run ./scripts resume1.pdf resume2.docx > embeddings.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/hiring-assistant/internal/config"
	"alfredoptarigan/hiring-assistant/internal/logger"
	"alfredoptarigan/hiring-assistant/internal/models"
	"alfredoptarigan/hiring-assistant/internal/services"
)

type embeddingsFile struct {
	Files              []string                 `json:"files"`
	ExistingEmbeddings []models.EmbeddingVector `json:"existingEmbeddings"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: embed_resumes <resume> [resume...]")
		os.Exit(2)
	}

	cfg, err := config.Load(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Log.JSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:         cfg.AI.APIKey,
		EmbeddingModel: cfg.AI.EmbeddingModel,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize Gemini", zap.Error(err))
	}
	if !gemini.Configured() {
		log.Fatal("GEMINI_API_KEY is required to embed resumes")
	}

	extractor := services.NewResumeExtractor(services.ExtractorOptions{
		MaxSize: cfg.Storage.MaxUploadSize,
		TempDir: cfg.Storage.TempDir,
	}, log)

	out, err := embedAll(ctx, extractor, gemini, os.Args[1:], log)
	if err != nil {
		log.Fatal("embedding failed", zap.Error(err))
	}

	if err := writeOutput(os.Stdout, out); err != nil {
		log.Fatal("failed to write output", zap.Error(err))
	}
}

// newLogger logs to stderr; stdout carries only the JSON document.
func newLogger(jsonLogs bool) (*zap.Logger, error) {
	log, err := logger.NewWithOutput(jsonLogs, false, "stderr")
	if err != nil {
		return nil, err
	}
	return log.WithOptions(zap.IncreaseLevel(zap.WarnLevel)), nil
}

func writeOutput(w io.Writer, out *embeddingsFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type textExtractor interface {
	Extract(ctx context.Context, fileName string, r io.Reader) (string, error)
}

// embedAll skips files that cannot be extracted and stops on provider errors.
func embedAll(ctx context.Context, extractor textExtractor, embedder services.Embedder, paths []string, log *zap.Logger) (*embeddingsFile, error) {
	out := &embeddingsFile{Files: []string{}, ExistingEmbeddings: []models.EmbeddingVector{}}

	for _, path := range paths {
		text, err := extractFile(ctx, extractor, path)
		if err != nil {
			log.Warn("skipping resume", zap.String("file", path), zap.String("reason", services.UserMessage(err)))
			continue
		}

		vector, err := embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed %s: %w", path, err)
		}

		out.Files = append(out.Files, filepath.Base(path))
		out.ExistingEmbeddings = append(out.ExistingEmbeddings, vector)
	}

	return out, nil
}

func extractFile(ctx context.Context, extractor textExtractor, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return extractor.Extract(ctx, filepath.Base(path), f)
}
