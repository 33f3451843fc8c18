package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/hiring-assistant/internal/logger"
)

// Completion sources.
const (
	SourceCache    = "cache"
	SourceProvider = "provider"
	SourceFallback = "fallback"
)

// RunOptions tune one AI call. Zero values fall back to the engine defaults.
// An empty FallbackResponse means failures are returned to the caller.
type RunOptions struct {
	CacheKey         string
	Model            string
	Temperature      *float64
	MaxTokens        int
	FallbackResponse string
}

// Completion is the outcome of Complete. Err holds the absorbed failure
// when Source is SourceFallback.
type Completion struct {
	Text   string
	Source string
	Err    error
}

type EngineDefaults struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// AIEngine is the single network boundary for generative calls: it consults
// the response cache, calls the provider and applies fallbacks.
type AIEngine struct {
	generator TextGenerator
	cache     ResponseCache
	defaults  EngineDefaults
	log       *zap.Logger
}

func NewAIEngine(generator TextGenerator, cache ResponseCache, defaults EngineDefaults, log *zap.Logger) *AIEngine {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if defaults.Model == "" {
		defaults.Model = "gemini-2.5-flash"
	}
	return &AIEngine{
		generator: generator,
		cache:     cache,
		defaults:  defaults,
		log:       logger.OrNop(log),
	}
}

// Complete runs prompt and reports where the text came from.
func (e *AIEngine) Complete(ctx context.Context, prompt string, opts RunOptions) (*Completion, error) {
	if opts.CacheKey != "" {
		if cached, ok := e.cache.Get(ctx, opts.CacheKey); ok {
			e.log.Debug("ai cache hit", logger.CacheKey(opts.CacheKey))
			return &Completion{Text: cached, Source: SourceCache}, nil
		}
	}

	text, err := e.generate(ctx, prompt, opts)
	if err == nil {
		if opts.CacheKey != "" {
			e.cache.Set(ctx, opts.CacheKey, text)
		}
		return &Completion{Text: text, Source: SourceProvider}, nil
	}

	if opts.FallbackResponse != "" {
		e.log.Warn("ai call failed, using fallback response",
			logger.CacheKey(opts.CacheKey),
			zap.String(logger.FieldReason, failureReason(err)),
			zap.Error(err))
		return &Completion{Text: opts.FallbackResponse, Source: SourceFallback, Err: err}, nil
	}

	return nil, err
}

// Run is Complete without the provenance.
func (e *AIEngine) Run(ctx context.Context, prompt string, opts RunOptions) (string, error) {
	completion, err := e.Complete(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	return completion.Text, nil
}

// ClearCache drops every cached response.
func (e *AIEngine) ClearCache(ctx context.Context) error {
	return e.cache.Clear(ctx)
}

func (e *AIEngine) generate(ctx context.Context, prompt string, opts RunOptions) (string, error) {
	if e.generator == nil {
		return "", ErrConfigurationMissing
	}

	params := GenerationParams{
		Model:       e.defaults.Model,
		Temperature: e.defaults.Temperature,
		MaxTokens:   e.defaults.MaxTokens,
		JSON:        true,
	}
	if opts.Model != "" {
		params.Model = opts.Model
	}
	if opts.Temperature != nil {
		params.Temperature = *opts.Temperature
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = opts.MaxTokens
	}

	text, err := e.generator.GenerateText(ctx, prompt, params)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.Join(ErrProviderFailure, errors.New("empty AI response"))
	}
	return text, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "context_done"
	case errors.Is(err, ErrProviderFailure):
		return "provider_failure"
	}
	return "unknown"
}
