package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Cache   CacheConfig
	Storage StorageConfig
	Ranking RankingConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type AIConfig struct {
	APIKey             string
	Model              string
	EmbeddingModel     string
	Temperature        float64
	MaxTokens          int
	MaxAttempts        int
	DuplicateThreshold float64
}

type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend   string
	RedisURL  string
	KeyPrefix string
}

type StorageConfig struct {
	TempDir       string
	MaxUploadSize int64
}

type RankingConfig struct {
	WeightAI         float64
	WeightExperience float64
	WeightSkills     float64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

// Env files loaded in order. Earlier files win, and the process
// environment wins over all of them.
var envFiles = []string{".env.local", ".env"}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("AI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("AI_TEMPERATURE", 0.2)
	v.SetDefault("AI_MAX_TOKENS", 0)
	v.SetDefault("AI_MAX_ATTEMPTS", 1)
	v.SetDefault("DUPLICATE_THRESHOLD", 0.92)

	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_KEY_PREFIX", "hiring-assistant:ai:")

	v.SetDefault("TEMP_DIR", "")
	v.SetDefault("MAX_UPLOAD_SIZE", 8<<20)

	v.SetDefault("RANK_WEIGHT_AI", 0.5)
	v.SetDefault("RANK_WEIGHT_EXPERIENCE", 0.2)
	v.SetDefault("RANK_WEIGHT_SKILLS", 0.3)

	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
}

// LoadEnvFiles loads the env files from dir, skipping missing ones.
func LoadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := name
		if dir != "" {
			path = strings.TrimSuffix(dir, "/") + "/" + name
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads env files from the working directory and builds the config from v.
func Load(v *viper.Viper) (*Config, error) {
	if err := LoadEnvFiles(""); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper builds the config from v without touching env files.
func FromViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		AI: AIConfig{
			APIKey:             v.GetString("GEMINI_API_KEY"),
			Model:              v.GetString("AI_MODEL"),
			EmbeddingModel:     v.GetString("AI_EMBEDDING_MODEL"),
			Temperature:        v.GetFloat64("AI_TEMPERATURE"),
			MaxTokens:          v.GetInt("AI_MAX_TOKENS"),
			MaxAttempts:        v.GetInt("AI_MAX_ATTEMPTS"),
			DuplicateThreshold: v.GetFloat64("DUPLICATE_THRESHOLD"),
		},
		Cache: CacheConfig{
			Backend:   strings.ToLower(strings.TrimSpace(v.GetString("CACHE_BACKEND"))),
			RedisURL:  v.GetString("REDIS_URL"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Storage: StorageConfig{
			TempDir:       v.GetString("TEMP_DIR"),
			MaxUploadSize: v.GetInt64("MAX_UPLOAD_SIZE"),
		},
		Ranking: RankingConfig{
			WeightAI:         v.GetFloat64("RANK_WEIGHT_AI"),
			WeightExperience: v.GetFloat64("RANK_WEIGHT_EXPERIENCE"),
			WeightSkills:     v.GetFloat64("RANK_WEIGHT_SKILLS"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("LOG_JSON"),
			Debug: v.GetBool("LOG_DEBUG"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
	}
	if c.AI.DuplicateThreshold <= 0 || c.AI.DuplicateThreshold > 1 {
		return fmt.Errorf("DUPLICATE_THRESHOLD must be within (0,1], got %v", c.AI.DuplicateThreshold)
	}
	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	if c.Ranking.WeightAI < 0 || c.Ranking.WeightExperience < 0 || c.Ranking.WeightSkills < 0 {
		return fmt.Errorf("ranking weights must not be negative")
	}
	return nil
}
