package handlers

import (
	"context"
	"encoding/json"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hiring-assistant/internal/models"
	"alfredoptarigan/hiring-assistant/internal/services"
)

// Assistant is the capability surface the HTTP layer needs.
type Assistant interface {
	ScoreResume(ctx context.Context, req models.ScoreRequest) (models.ResumeScoreReport, error)
	SummarizeResume(ctx context.Context, resume any) (models.ResumeSummary, error)
	GenerateInterviewQuestions(ctx context.Context, req models.QuestionsRequest) (models.InterviewQuestionSet, error)
	DraftRecruiterEmail(ctx context.Context, req models.EmailRequest) (models.EmailDraft, error)
	AnalyzeSkillGap(ctx context.Context, req models.SkillGapRequest) (models.SkillGapReport, error)
	RankCandidates(req models.RankRequest) []models.RankedCandidate
	CheckDuplicate(ctx context.Context, req models.DuplicateCheckRequest) (models.DuplicateCheckResult, error)
	AnalyzeResume(ctx context.Context, fileName string, r io.Reader, jobDescription string) (*models.ResumeAnalysis, error)
}

type AIHandler struct {
	assistant Assistant
	validate  *validator.Validate
}

func NewAIHandler(assistant Assistant) *AIHandler {
	return &AIHandler{
		assistant: assistant,
		validate:  validator.New(),
	}
}

// HandleScore handles POST /ai/score
func (h *AIHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if err := h.decode(c, &req); err != nil {
		return err
	}

	report, err := h.assistant.ScoreResume(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// HandleSummary handles POST /ai/summary
func (h *AIHandler) HandleSummary(c *fiber.Ctx) error {
	var req models.SummaryRequest
	if err := h.decode(c, &req); err != nil {
		return err
	}

	summary, err := h.assistant.SummarizeResume(c.UserContext(), req.Resume)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// HandleQuestions handles POST /ai/questions
func (h *AIHandler) HandleQuestions(c *fiber.Ctx) error {
	var req models.QuestionsRequest
	if err := h.decode(c, &req); err != nil {
		return err
	}

	set, err := h.assistant.GenerateInterviewQuestions(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(set)
}

// HandleEmail handles POST /ai/email
func (h *AIHandler) HandleEmail(c *fiber.Ctx) error {
	var req models.EmailRequest
	if err := h.decode(c, &req); err != nil {
		return err
	}

	draft, err := h.assistant.DraftRecruiterEmail(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

// HandleSkillGap handles POST /ai/skill-gap
func (h *AIHandler) HandleSkillGap(c *fiber.Ctx) error {
	var req models.SkillGapRequest
	if err := h.decode(c, &req); err != nil {
		return err
	}

	report, err := h.assistant.AnalyzeSkillGap(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// HandleRank handles POST /ai/rank
func (h *AIHandler) HandleRank(c *fiber.Ctx) error {
	req, err := h.rankRequest(c)
	if err != nil {
		return err
	}

	return c.JSON(models.RankResponse{Candidates: h.assistant.RankCandidates(req)})
}

// HandleRankExport handles POST /ai/rank/export and returns an xlsx workbook.
func (h *AIHandler) HandleRankExport(c *fiber.Ctx) error {
	req, err := h.rankRequest(c)
	if err != nil {
		return err
	}

	data, err := services.ExportRanking(h.assistant.RankCandidates(req), req.JobSkills, req.PreferredYears)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment("candidate-ranking.xlsx")
	return c.Send(data)
}

// HandleDuplicateCheck handles POST /ai/duplicate-check
func (h *AIHandler) HandleDuplicateCheck(c *fiber.Ctx) error {
	var req models.DuplicateCheckRequest
	if err := h.decode(c, &req); err != nil {
		return err
	}
	if req.ExistingEmbeddings == nil {
		req.ExistingEmbeddings = []models.EmbeddingVector{}
	}

	result, err := h.assistant.CheckDuplicate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AIHandler) rankRequest(c *fiber.Ctx) (models.RankRequest, error) {
	var req models.RankRequest
	if err := h.decode(c, &req); err != nil {
		return req, err
	}
	if req.Candidates == nil {
		req.Candidates = []models.Candidate{}
	}
	if req.JobSkills == nil {
		req.JobSkills = []string{}
	}
	return req, nil
}

// decode reads a JSON body into dst and validates it. An empty body is
// treated as an empty object.
func (h *AIHandler) decode(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(body) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return services.NewInputError("Invalid request body", err)
		}
	}

	if err := h.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}
