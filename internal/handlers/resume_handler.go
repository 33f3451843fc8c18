package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hiring-assistant/internal/services"
)

type ResumeHandler struct {
	assistant   Assistant
	maxFileSize int64
}

func NewResumeHandler(assistant Assistant, maxFileSize int64) *ResumeHandler {
	return &ResumeHandler{
		assistant:   assistant,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /ai/resume-analyze with a multipart "resume"
// file and an optional "jobDescription" field.
func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return services.NewInputError("Missing resume file.", nil)
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return &services.TooLargeError{Limit: h.maxFileSize}
	}

	src, err := file.Open()
	if err != nil {
		return services.NewInputError("Failed to read the uploaded resume.", err)
	}
	defer src.Close()

	analysis, err := h.assistant.AnalyzeResume(c.UserContext(), file.Filename, src, strings.TrimSpace(c.FormValue("jobDescription")))
	if err != nil {
		return err
	}
	return c.JSON(analysis)
}
