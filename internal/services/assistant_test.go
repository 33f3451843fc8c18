package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/hiring-assistant/internal/models"
)

func newTestAssistant(t *testing.T, gen TextGenerator, emb Embedder, runner *fakeRunner) (*HiringAssistant, *MemoryCache) {
	t.Helper()
	cache := NewMemoryCache()
	engine := NewAIEngine(gen, cache, EngineDefaults{Model: "test-model", Temperature: 0.2}, zap.NewNop())

	var extractor *ResumeExtractor
	if runner != nil {
		extractor = NewResumeExtractor(ExtractorOptions{TempDir: t.TempDir(), Runner: runner.run, DisableBuiltin: true}, zap.NewNop())
	}

	return NewHiringAssistant(engine, emb, extractor, AssistantOptions{}, zap.NewNop()), cache
}

func TestScoreResume(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{response: `{"score":81,"matching_skills":["Go"],"missing_skills":["K8s"],"strengths":["APIs"],"weaknesses":[],"recommendation":"Strong Fit","reason":"solid"}`}
	assistant, cache := newTestAssistant(t, gen, nil, nil)

	req := models.ScoreRequest{Resume: map[string]any{"skills": []string{"Go"}}, Job: "Go developer"}
	report, err := assistant.ScoreResume(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, report.Score)
	assert.Equal(t, 81.0, *report.Score)
	assert.Equal(t, models.RecommendationStrongFit, report.Recommendation)
	assert.Equal(t, []string{"K8s"}, report.MissingSkills)

	_, ok := cache.Get(ctx, `score:{"resume":{"skills":["Go"]},"job":"Go developer"}`)
	assert.True(t, ok)

	_, err = assistant.ScoreResume(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.callCount())
}

func TestScoreResumeProviderFallback(t *testing.T) {
	assistant, cache := newTestAssistant(t, &stubGenerator{err: ErrConfigurationMissing}, nil, nil)

	report, err := assistant.ScoreResume(context.Background(), models.ScoreRequest{Resume: "r", Job: "j"})
	require.NoError(t, err)
	assert.Nil(t, report.Score)
	assert.Equal(t, "AI unavailable", report.Reason)
	assert.Equal(t, models.RecommendationWeak, report.Recommendation)
	assert.Equal(t, []string{}, report.MatchingSkills)
	assert.Equal(t, 0, cache.Len())
}

func TestScoreResumeParseFallback(t *testing.T) {
	assistant, _ := newTestAssistant(t, &stubGenerator{response: "I think the candidate is great"}, nil, nil)

	report, err := assistant.ScoreResume(context.Background(), models.ScoreRequest{Resume: "r", Job: "j"})
	require.NoError(t, err)
	require.NotNil(t, report.Score)
	assert.Equal(t, 0.0, *report.Score)
	assert.Equal(t, "AI parsing failed", report.Reason)
	assert.Equal(t, []string{}, report.Weaknesses)
}

func TestSummarizeResume(t *testing.T) {
	ctx := context.Background()

	ok, _ := newTestAssistant(t, &stubGenerator{response: "```json\n{\"summary_bullets\":[\"6 years Go\"]}\n```"}, nil, nil)
	summary, err := ok.SummarizeResume(ctx, "resume text")
	require.NoError(t, err)
	assert.Equal(t, []string{"6 years Go"}, summary.SummaryBullets)

	down, _ := newTestAssistant(t, &stubGenerator{err: ErrProviderFailure}, nil, nil)
	summary, err = down.SummarizeResume(ctx, "resume text")
	require.NoError(t, err)
	assert.Equal(t, []string{"AI unavailable"}, summary.SummaryBullets)

	broken, _ := newTestAssistant(t, &stubGenerator{response: "{"}, nil, nil)
	summary, err = broken.SummarizeResume(ctx, "resume text")
	require.NoError(t, err)
	assert.Equal(t, []string{"AI parsing failed"}, summary.SummaryBullets)
}

func TestGenerateInterviewQuestions(t *testing.T) {
	gen := &stubGenerator{response: `{"technical":["What is a goroutine?"],"behavioral":["Tell me about a conflict"]}`}
	assistant, _ := newTestAssistant(t, gen, nil, nil)

	set, err := assistant.GenerateInterviewQuestions(context.Background(), models.QuestionsRequest{Role: "Go dev", Level: "mid", Skills: []string{"Go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"What is a goroutine?"}, set.Technical)
	assert.Equal(t, []string{}, set.Scenario)
	assert.Contains(t, gen.lastPrompt, "Role: Go dev")
	assert.True(t, gen.lastParams.JSON)
}

func TestDraftRecruiterEmail(t *testing.T) {
	ctx := context.Background()

	down, _ := newTestAssistant(t, &stubGenerator{err: ErrProviderFailure}, nil, nil)
	draft, err := down.DraftRecruiterEmail(ctx, models.EmailRequest{Purpose: "invite", Tone: "formal", Name: "Ana", Role: "SRE"})
	require.NoError(t, err)
	assert.Equal(t, models.EmailDraft{Subject: "AI unavailable", Body: "Unable to draft email. Please try again."}, draft)

	wrongType, _ := newTestAssistant(t, &stubGenerator{response: `{"subject":5,"body":"x"}`}, nil, nil)
	draft, err = wrongType.DraftRecruiterEmail(ctx, models.EmailRequest{Purpose: "invite"})
	require.NoError(t, err)
	assert.Equal(t, models.EmailDraft{Subject: "AI parsing failed", Body: "Unable to parse email draft"}, draft)
}

func TestAnalyzeSkillGap(t *testing.T) {
	gen := &stubGenerator{response: `{"missing_skills":["Kubernetes"],"recommended_learning":["CKA course"],"estimated_weeks_to_learn":6}`}
	assistant, cache := newTestAssistant(t, gen, nil, nil)

	req := models.SkillGapRequest{CandidateSkills: []string{"Go"}, JobRequirements: []string{"Go", "Kubernetes"}}
	report, err := assistant.AnalyzeSkillGap(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6.0, report.EstimatedWeeksToLearn)
	assert.Equal(t, []string{"Kubernetes"}, report.MissingSkills)

	_, ok := cache.Get(context.Background(), `skill-gap:{"candidateSkills":["Go"],"jobRequirements":["Go","Kubernetes"]}`)
	assert.True(t, ok)

	require.NoError(t, assistant.ClearCache(context.Background()))
	assert.Equal(t, 0, cache.Len())
}

func TestCheckDuplicate(t *testing.T) {
	ctx := context.Background()
	emb := &stubEmbedder{vector: []float64{1, 0}}
	assistant, cache := newTestAssistant(t, &stubGenerator{}, emb, nil)

	req := models.DuplicateCheckRequest{
		ResumeText:         "Jane, jane@x.io",
		ExistingEmbeddings: []models.EmbeddingVector{{0, 1}, {2, 0}},
	}
	result, err := assistant.CheckDuplicate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.DuplicateCheckResult{IsDuplicate: true, Similarity: 1, Threshold: 0.92}, result)
	assert.Equal(t, "Jane, jane@x.io", emb.lastText)
	assert.Equal(t, 0, cache.Len())

	strict := 1.0
	req.Threshold = &strict
	result, err = assistant.CheckDuplicate(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, 1.0, result.Threshold)
}

func TestCheckDuplicatePropagatesProviderErrors(t *testing.T) {
	assistant, _ := newTestAssistant(t, &stubGenerator{}, &stubEmbedder{err: ErrConfigurationMissing}, nil)

	_, err := assistant.CheckDuplicate(context.Background(), models.DuplicateCheckRequest{ResumeText: "x"})
	assert.ErrorIs(t, err, ErrConfigurationMissing)

	noEmbedder, _ := newTestAssistant(t, &stubGenerator{}, nil, nil)
	_, err = noEmbedder.CheckDuplicate(context.Background(), models.DuplicateCheckRequest{})
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestRankCandidatesUsesConfiguredWeights(t *testing.T) {
	engine := NewAIEngine(&stubGenerator{}, nil, EngineDefaults{}, nil)
	assistant := NewHiringAssistant(engine, nil, nil, AssistantOptions{Weights: RankingWeights{AIScore: 1}}, nil)

	ranked := assistant.RankCandidates(models.RankRequest{
		Candidates: []models.Candidate{{CandidateID: "a", AIScore: 40}, {CandidateID: "b", AIScore: 90}},
	})
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].CandidateID)
	assert.Equal(t, 90.0, ranked[0].FinalScore)
	assert.Equal(t, "AI score (90) * 1 + experience (100) * 0 + skill overlap (0) * 0", ranked[0].Explanation)
}

func TestAnalyzeResume(t *testing.T) {
	gen := &stubGenerator{responses: map[string]string{
		"Summarize candidate resume": `{"summary_bullets":["Go engineer"]}`,
		"You are an ATS evaluator":   `{"score":70,"recommendation":"Moderate","reason":"ok"}`,
	}}
	runner := &fakeRunner{outputs: map[string]string{"pdftotext": "Jane Go engineer\x00 mail jane@x.io"}}
	assistant, _ := newTestAssistant(t, gen, nil, runner)

	analysis, err := assistant.AnalyzeResume(context.Background(), "jane.pdf", strings.NewReader("%PDF"), "Backend role")
	require.NoError(t, err)
	assert.Equal(t, "jane.pdf", analysis.FileName)
	assert.Equal(t, "Jane Go engineer  mail [REDACTED]", analysis.ExtractedText)
	assert.Equal(t, []string{"Go engineer"}, analysis.Summary.SummaryBullets)
	require.NotNil(t, analysis.Score)
	assert.Equal(t, "Moderate", analysis.Score.Recommendation)
	assert.Equal(t, 2, gen.callCount())
}

func TestAnalyzeResumeWithoutJobDescription(t *testing.T) {
	gen := &stubGenerator{response: `{"summary_bullets":["x"]}`}
	runner := &fakeRunner{outputs: map[string]string{"catdoc": "text"}}
	assistant, _ := newTestAssistant(t, gen, nil, runner)

	analysis, err := assistant.AnalyzeResume(context.Background(), "cv.doc", bytes.NewReader([]byte("doc")), "   ")
	require.NoError(t, err)
	assert.Nil(t, analysis.Score)
	assert.Equal(t, 1, gen.callCount())
}

func TestAnalyzeResumeExtractionErrors(t *testing.T) {
	assistant, _ := newTestAssistant(t, &stubGenerator{}, nil, &fakeRunner{})

	_, err := assistant.AnalyzeResume(context.Background(), "cv.pdf", strings.NewReader("%PDF"), "")
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, err = assistant.AnalyzeResume(context.Background(), "cv.png", strings.NewReader("png"), "")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
