package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/hiring-assistant/internal/logger"
)

const bodyLimitSlack = 1 << 20

type AppOptions struct {
	Name          string
	MaxUploadSize int64
	// AIConfigured is reported by the health endpoint.
	AIConfigured bool
}

// NewApp builds the fiber application with middleware and every route.
func NewApp(assistant Assistant, opts AppOptions, log *zap.Logger) *fiber.App {
	log = logger.OrNop(log)
	if opts.Name == "" {
		opts.Name = "Hiring Assistant API"
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = 8 << 20
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		// leave room above the upload cap so oversized resumes reach the handler
		BodyLimit:             int(opts.MaxUploadSize) + bodyLimitSlack,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	aiHandler := NewAIHandler(assistant)
	resumeHandler := NewResumeHandler(assistant, opts.MaxUploadSize)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":        "healthy",
			"time":          time.Now(),
			"ai_configured": opts.AIConfigured,
		})
	})

	ai := api.Group("/ai")
	ai.Post("/score", aiHandler.HandleScore)
	ai.Post("/summary", aiHandler.HandleSummary)
	ai.Post("/questions", aiHandler.HandleQuestions)
	ai.Post("/email", aiHandler.HandleEmail)
	ai.Post("/skill-gap", aiHandler.HandleSkillGap)
	ai.Post("/rank", aiHandler.HandleRank)
	ai.Post("/rank/export", aiHandler.HandleRankExport)
	ai.Post("/duplicate-check", aiHandler.HandleDuplicateCheck)
	ai.Post("/resume-analyze", resumeHandler.HandleAnalyze)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": opts.Name,
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/ai/score",
				"POST /api/v1/ai/summary",
				"POST /api/v1/ai/questions",
				"POST /api/v1/ai/email",
				"POST /api/v1/ai/skill-gap",
				"POST /api/v1/ai/rank",
				"POST /api/v1/ai/rank/export",
				"POST /api/v1/ai/duplicate-check",
				"POST /api/v1/ai/resume-analyze",
			},
		})
	})

	return app
}
