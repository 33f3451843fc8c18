package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/hiring-assistant/internal/logger"
)

// maxEmbeddingInput keeps embedding requests under the provider's token limit.
const maxEmbeddingInput = 40000

// GenerationParams configures one text generation call.
type GenerationParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// JSON requests an application/json response.
	JSON bool
}

// TextGenerator turns a prompt into model text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

type GeminiOptions struct {
	APIKey         string
	EmbeddingModel string
	// MaxAttempts bounds retries of failed generation calls. Values below 1 mean one attempt.
	MaxAttempts int
}

// GeminiService implements TextGenerator and Embedder on top of genai. It
// can be built without a key; every call then fails with ErrConfigurationMissing.
type GeminiService struct {
	client      *genai.Client
	embedModel  string
	maxAttempts int
	log         *zap.Logger
}

func NewGeminiService(ctx context.Context, opts GeminiOptions, log *zap.Logger) (*GeminiService, error) {
	svc := &GeminiService{
		embedModel:  opts.EmbeddingModel,
		maxAttempts: max(opts.MaxAttempts, 1),
		log:         logger.OrNop(log).With(zap.String("ai_provider", "gemini")),
	}

	if strings.TrimSpace(opts.APIKey) == "" {
		svc.log.Warn("GEMINI_API_KEY is not set, AI capabilities will use fallbacks")
		return svc, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	svc.client = client

	return svc, nil
}

// Configured reports whether a credential was supplied.
func (g *GeminiService) Configured() bool {
	return g.client != nil
}

// GenerateText implements TextGenerator.
func (g *GeminiService) GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	if g.client == nil {
		return "", ErrConfigurationMissing
	}

	temperature := float32(params.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if params.MaxTokens > 0 {
		config.MaxOutputTokens = int32(params.MaxTokens)
	}
	if params.JSON {
		config.ResponseMIMEType = "application/json"
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		text, err := g.generateOnce(ctx, params.Model, prompt, config)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt < g.maxAttempts {
			g.log.Warn("generation attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.String(logger.FieldModel, params.Model),
				zap.Error(err))
		}
	}

	return "", lastErr
}

func (g *GeminiService) generateOnce(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrProviderFailure)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrProviderFailure)
	}

	g.log.Debug("gemini response received",
		zap.String(logger.FieldModel, model),
		zap.String("preview", logger.TruncateForLog(text, 200)))

	return text, nil
}

// Embed implements Embedder. The text is sanitized before it leaves the process.
func (g *GeminiService) Embed(ctx context.Context, text string) ([]float64, error) {
	if g.client == nil {
		return nil, ErrConfigurationMissing
	}

	text = truncateBytes(Sanitize(text), maxEmbeddingInput)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate embedding: %v", ErrProviderFailure, err)
	}

	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return []float64{}, nil
	}

	values := result.Embeddings[0].Values
	vector := make([]float64, len(values))
	for i, v := range values {
		vector[i] = float64(v)
	}

	return vector, nil
}

// truncateBytes cuts s to at most limit bytes without splitting a rune.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
