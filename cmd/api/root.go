package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/hiring-assistant/internal/config"
	"alfredoptarigan/hiring-assistant/internal/handlers"
	"alfredoptarigan/hiring-assistant/internal/logger"
	"alfredoptarigan/hiring-assistant/internal/services"
)

const app = "hiring-assistant"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "hiring-assistant serves AI-assisted resume scoring, ranking and drafting endpoints",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")

	_ = viper.BindPFlag("LOG_DEBUG", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("PORT", rootCmd.Flags().Lookup("port"))
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()
	log.Info("✅ Config loaded", zap.String("env", cfg.Server.Env), zap.String("cache_backend", cfg.Cache.Backend))

	gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:         cfg.AI.APIKey,
		EmbeddingModel: cfg.AI.EmbeddingModel,
		MaxAttempts:    cfg.AI.MaxAttempts,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini AI: %w", err)
	}
	log.Info("✅ Gemini AI initialized", zap.Bool("configured", gemini.Configured()), zap.String(logger.FieldModel, cfg.AI.Model))

	cache, closeCache, err := buildCache(ctx, cfg.Cache, log)
	if err != nil {
		return err
	}
	defer closeCache()

	engine := services.NewAIEngine(gemini, cache, services.EngineDefaults{
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	}, log)

	extractor := services.NewResumeExtractor(services.ExtractorOptions{
		MaxSize: cfg.Storage.MaxUploadSize,
		TempDir: cfg.Storage.TempDir,
	}, log)

	assistant := services.NewHiringAssistant(engine, gemini, extractor, services.AssistantOptions{
		DuplicateThreshold: cfg.AI.DuplicateThreshold,
		Weights: services.RankingWeights{
			AIScore:    cfg.Ranking.WeightAI,
			Experience: cfg.Ranking.WeightExperience,
			Skills:     cfg.Ranking.WeightSkills,
		},
	}, log)
	log.Info("✅ Services initialized")

	server := handlers.NewApp(assistant, handlers.AppOptions{
		MaxUploadSize: cfg.Storage.MaxUploadSize,
		AIConfigured:  gemini.Configured(),
	}, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Server.Port
	log.Info("🚀 Server starting", zap.String("addr", addr))
	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildCache(ctx context.Context, cfg config.CacheConfig, log *zap.Logger) (services.ResponseCache, func(), error) {
	if cfg.Backend != "redis" {
		return services.NewMemoryCache(), func() {}, nil
	}

	cache, err := services.NewRedisCache(ctx, cfg.RedisURL, cfg.KeyPrefix, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis cache: %w", err)
	}
	log.Info("✅ Redis cache connected")

	return cache, func() {
		if err := cache.Close(); err != nil {
			log.Warn("failed to close redis cache", zap.Error(err))
		}
	}, nil
}
