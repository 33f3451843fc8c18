package services

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing means no provider credential is configured.
	ErrConfigurationMissing = errors.New("AI provider is not configured")
	// ErrProviderFailure covers network errors and empty model or embedding responses.
	ErrProviderFailure = errors.New("AI provider request failed")
	// ErrParseFailure means the model output was not valid structured data.
	ErrParseFailure = errors.New("failed to parse AI response")

	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrTooLarge          = errors.New("file too large")
	ErrExtractionFailed  = errors.New("no converter produced text")

	// ErrInvalidInput marks malformed caller payloads.
	ErrInvalidInput = errors.New("invalid input")
)

// InputError carries a user-facing message for a malformed payload while
// still matching ErrInvalidInput.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InputError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidInput, e.Cause}
	}
	return []error{ErrInvalidInput}
}

// NewInputError wraps cause as an invalid-input error.
func NewInputError(message string, cause error) error {
	return &InputError{Message: message, Cause: cause}
}

// TooLargeError reports the limit that was exceeded.
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%v: limit is %d bytes", ErrTooLarge, e.Limit)
}

func (e *TooLargeError) Unwrap() error {
	return ErrTooLarge
}

// UserMessage returns the text shown to API callers for err.
func UserMessage(err error) string {
	var tooLarge *TooLargeError
	var input *InputError

	switch {
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("File too large. Max upload size is %s.", formatMegabytes(tooLarge.Limit))
	case errors.Is(err, ErrTooLarge):
		return fmt.Sprintf("File too large. Max upload size is %s.", formatMegabytes(defaultMaxUploadSize))
	case errors.Is(err, ErrUnsupportedFormat):
		return "Unsupported file type. Upload a PDF, DOC, or DOCX file."
	case errors.Is(err, ErrExtractionFailed):
		return "Could not extract text from this file in the current environment."
	case errors.As(err, &input):
		return input.Message
	}
	return err.Error()
}

func formatMegabytes(n int64) string {
	if n < 1<<20 {
		return fmt.Sprintf("%d KB", n>>10)
	}
	mb := float64(n) / (1 << 20)
	if mb == float64(int64(mb)) {
		return fmt.Sprintf("%d MB", int64(mb))
	}
	return fmt.Sprintf("%.1f MB", mb)
}
