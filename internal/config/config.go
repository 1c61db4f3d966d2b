package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	OCR      OCRConfig
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type CacheConfig struct {
	// Backend picks "redis" or "memory". Memory is for local runs and tests.
	Backend       string
	OCRTTL        time.Duration
	ExtractionTTL time.Duration
	PatternTTL    time.Duration
	CompleteTTL   time.Duration
}

type OCRConfig struct {
	ClovaEndpoint string
	ClovaSecret   string
}

type AIConfig struct {
	LLMProvider string // "ollama", "openai", "huggingface"
	LLMModel    string
	LLMBaseURL  string
	LLMAPIKey   string
}

type PipelineConfig struct {
	MaxTries      int
	StageTimeout  time.Duration
	FeedbackTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "redis"),
			OCRTTL:        getEnvAsDuration("CACHE_OCR_TTL", 24*time.Hour),
			ExtractionTTL: getEnvAsDuration("CACHE_EXTRACTION_TTL", 2*time.Hour),
			PatternTTL:    getEnvAsDuration("CACHE_PATTERN_TTL", 6*time.Hour),
			CompleteTTL:   getEnvAsDuration("CACHE_COMPLETE_TTL", time.Hour),
		},
		OCR: OCRConfig{
			ClovaEndpoint: getEnv("CLOVA_OCR_ENDPOINT", ""),
			ClovaSecret:   getEnv("CLOVA_OCR_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:    getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		},
		Pipeline: PipelineConfig{
			MaxTries:      getEnvAsInt("PIPELINE_MAX_TRIES", 3),
			StageTimeout:  getEnvAsDuration("PIPELINE_STAGE_TIMEOUT", 60*time.Second),
			FeedbackTopic: getEnv("EXPENSE_FEEDBACK_TOPIC_NAME", "EXPENSE_FEEDBACK"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
