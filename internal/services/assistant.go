package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/hiring-assistant/internal/logger"
	"alfredoptarigan/hiring-assistant/internal/models"
)

// Fallback reasons surfaced to callers.
const (
	reasonUnavailable   = "AI unavailable"
	reasonParsingFailed = "AI parsing failed"
)

type normalizer interface {
	Normalize()
}

// HiringAssistant wires prompts, the AI engine, the parser, ranking,
// duplicate detection and resume extraction into the exposed capabilities.
type HiringAssistant struct {
	engine    *AIEngine
	embedder  Embedder
	extractor *ResumeExtractor
	prompts   *PromptBuilder
	schemas   *Schemas
	ranker    *Ranker
	threshold float64
	log       *zap.Logger
}

type AssistantOptions struct {
	DuplicateThreshold float64
	Weights            RankingWeights
}

func NewHiringAssistant(engine *AIEngine, embedder Embedder, extractor *ResumeExtractor, opts AssistantOptions, log *zap.Logger) *HiringAssistant {
	if opts.DuplicateThreshold <= 0 {
		opts.DuplicateThreshold = DefaultDuplicateThreshold
	}
	if opts.Weights == (RankingWeights{}) {
		opts.Weights = DefaultRankingWeights
	}

	return &HiringAssistant{
		engine:    engine,
		embedder:  embedder,
		extractor: extractor,
		prompts:   NewPromptBuilder(),
		schemas:   MustLoadSchemas(),
		ranker:    NewRanker(opts.Weights),
		threshold: opts.DuplicateThreshold,
		log:       logger.OrNop(log),
	}
}

// ScoreResume rates a resume against a job description.
func (h *HiringAssistant) ScoreResume(ctx context.Context, req models.ScoreRequest) (models.ResumeScoreReport, error) {
	zero := 0.0
	providerFallback := models.ResumeScoreReport{
		Recommendation: models.RecommendationWeak,
		Reason:         reasonUnavailable,
	}
	parseFallback := models.ResumeScoreReport{
		Score:          &zero,
		Recommendation: models.RecommendationWeak,
		Reason:         reasonParsingFailed,
	}

	return runCapability(ctx, h, "score", req, h.prompts.BuildResumeScoringPrompt(req.Resume, req.Job),
		providerFallback, parseFallback, h.schemas.Score)
}

func (h *HiringAssistant) SummarizeResume(ctx context.Context, resume any) (models.ResumeSummary, error) {
	return runCapability(ctx, h, "summary", resume, h.prompts.BuildSummaryPrompt(resume),
		models.ResumeSummary{SummaryBullets: []string{reasonUnavailable}},
		models.ResumeSummary{SummaryBullets: []string{reasonParsingFailed}},
		h.schemas.Summary)
}

func (h *HiringAssistant) GenerateInterviewQuestions(ctx context.Context, req models.QuestionsRequest) (models.InterviewQuestionSet, error) {
	return runCapability(ctx, h, "questions", req, h.prompts.BuildInterviewQuestionsPrompt(req),
		models.InterviewQuestionSet{}, models.InterviewQuestionSet{}, h.schemas.Questions)
}

func (h *HiringAssistant) DraftRecruiterEmail(ctx context.Context, req models.EmailRequest) (models.EmailDraft, error) {
	return runCapability(ctx, h, "email", req, h.prompts.BuildEmailDraftPrompt(req),
		models.EmailDraft{Subject: reasonUnavailable, Body: "Unable to draft email. Please try again."},
		models.EmailDraft{Subject: reasonParsingFailed, Body: "Unable to parse email draft"},
		h.schemas.Email)
}

func (h *HiringAssistant) AnalyzeSkillGap(ctx context.Context, req models.SkillGapRequest) (models.SkillGapReport, error) {
	return runCapability(ctx, h, "skill-gap", req, h.prompts.BuildSkillGapPrompt(req),
		models.SkillGapReport{}, models.SkillGapReport{}, h.schemas.SkillGap)
}

// RankCandidates is pure and never touches the provider.
func (h *HiringAssistant) RankCandidates(req models.RankRequest) []models.RankedCandidate {
	return h.ranker.RankCandidates(req.Candidates, req.JobSkills, req.PreferredYears)
}

// CheckDuplicate embeds resumeText and compares it with existing vectors.
// Embeddings are never cached and provider errors are returned as is.
func (h *HiringAssistant) CheckDuplicate(ctx context.Context, req models.DuplicateCheckRequest) (models.DuplicateCheckResult, error) {
	if h.embedder == nil {
		return models.DuplicateCheckResult{}, ErrConfigurationMissing
	}

	threshold := h.threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	embedding, err := h.embedder.Embed(ctx, req.ResumeText)
	if err != nil {
		return models.DuplicateCheckResult{}, fmt.Errorf("failed to embed resume: %w", err)
	}

	return DetectDuplicateCandidate(embedding, req.ExistingEmbeddings, threshold), nil
}

// AnalyzeResume extracts an uploaded resume and runs the summary and, when
// a job description is given, the score concurrently.
func (h *HiringAssistant) AnalyzeResume(ctx context.Context, fileName string, r io.Reader, jobDescription string) (*models.ResumeAnalysis, error) {
	if h.extractor == nil {
		return nil, fmt.Errorf("resume extraction is not configured")
	}

	text, err := h.extractor.Extract(ctx, fileName, r)
	if err != nil {
		return nil, err
	}
	clean := Sanitize(text)

	analysis := &models.ResumeAnalysis{FileName: fileName, ExtractedText: clean}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := h.SummarizeResume(gCtx, clean)
		if err != nil {
			return err
		}
		analysis.Summary = summary
		return nil
	})

	if strings.TrimSpace(jobDescription) != "" {
		g.Go(func() error {
			score, err := h.ScoreResume(gCtx, models.ScoreRequest{Resume: clean, Job: jobDescription})
			if err != nil {
				return err
			}
			analysis.Score = &score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return analysis, nil
}

// ClearCache drops all cached AI responses.
func (h *HiringAssistant) ClearCache(ctx context.Context) error {
	return h.engine.ClearCache(ctx)
}

// runCapability is the shared cache, fallback and parse flow. The cache key
// is the capability name followed by the JSON of its parameters.
func runCapability[T any, PT interface {
	*T
	normalizer
}](ctx context.Context, h *HiringAssistant, name string, params any, prompt string, providerFallback, parseFallback T, schema *gojsonschema.Schema) (T, error) {
	PT(&providerFallback).Normalize()
	PT(&parseFallback).Normalize()

	fallbackJSON, err := json.Marshal(providerFallback)
	if err != nil {
		return parseFallback, fmt.Errorf("failed to encode %s fallback: %w", name, err)
	}

	raw, err := h.engine.Run(ctx, prompt, RunOptions{
		CacheKey:         name + ":" + stringify(params),
		FallbackResponse: string(fallbackJSON),
	})
	if err != nil {
		return parseFallback, err
	}

	result := Parse(raw, parseFallback, WithSchema(schema))
	if result.Fallback {
		h.log.Warn("ai response could not be parsed, using fallback",
			zap.String("capability", name),
			zap.String("preview", logger.TruncateForLog(raw, 120)),
			zap.Error(result.Err))
	}

	value := result.Value
	PT(&value).Normalize()
	return value, nil
}
