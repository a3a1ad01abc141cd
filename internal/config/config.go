package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration, loaded from environment variables.
type Config struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	ServiceAPIKey string

	DBMaxOpenConns int
	DBMaxIdleConns int

	// Generation API (any OpenAI-compatible endpoint).
	GenerationAPIKey  string
	GenerationBaseURL string
	GenerationModels  []string
	SectionsModels    []string
	VisionModel       string

	EmbeddingModel string

	ChunkSize       int
	TopK            int
	CacheTTL        time.Duration
	FramesPerSecond int
	MaxFrames       int
}

// Default model fallback order. Each model is tried once, in order, when the
// previous one is rate-limited or unavailable.
var defaultGenerationModels = []string{
	"gemini-2.0-flash-lite",
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-2.0-flash-exp",
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		ServiceAPIKey: os.Getenv("SERVICE_API_KEY"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		GenerationAPIKey:  os.Getenv("GOOGLE_AI_API_KEY"),
		GenerationBaseURL: getEnv("GENERATION_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		GenerationModels:  getEnvList("GENERATION_MODELS", defaultGenerationModels),
		SectionsModels:    getEnvList("SECTIONS_MODELS", []string{"gemini-2.0-flash"}),
		VisionModel:       getEnv("VISION_MODEL", "gemini-1.5-flash"),

		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),

		ChunkSize:       getEnvInt("CHUNK_SIZE", 4),
		TopK:            getEnvInt("RETRIEVAL_TOP_K", 5),
		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_SECONDS", 86400)) * time.Second,
		FramesPerSecond: getEnvInt("FRAMES_PER_SECOND", 1),
		MaxFrames:       getEnvInt("MAX_FRAMES", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
