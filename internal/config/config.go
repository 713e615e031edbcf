package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Keys      APIKeys
	Ai        AIConfig
	RateLimit RateLimitConfig
	Ingest    IngestConfig
	Otel      OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	NatsURL            string
	EventsStream       string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
	TokenTTL  time.Duration
}

type APIKeys struct {
	GoogleGemini    string
	GoogleTranslate string
}

type AIConfig struct {
	EmbeddingProvider  string // "ollama" or "gemini"
	EmbeddingModel     string
	EmbeddingDimension int
	OllamaBaseURL      string
	EmbeddingCacheTTL  time.Duration
	VectorStore        string // "pgvector" or "memory"

	LLMProvider string // "gemini" or "ollama"
	LLMModel    string
	GeminiURL   string

	TranslateURL string

	SimilarityThreshold float64
	TopK                int
	GenerationTimeout   time.Duration
	Strict              bool // fail-closed when an optional collaborator is missing
}

type RateLimitConfig struct {
	ChatLimit  int
	ChatWindow time.Duration
}

type IngestConfig struct {
	Topic     string
	ChunkSize int
	Overlap   int
	BatchSize int
	UploadDir string
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
			NatsURL:            getEnv("NATS_URL", ""),
			EventsStream:       getEnv("EVENTS_STREAM", "MEDASSIST"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", "change-me"),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Keys: APIKeys{
			GoogleGemini:    getEnv("GEMINI_API_KEY", ""),
			GoogleTranslate: getEnv("GOOGLE_TRANSLATE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "all-minilm"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 384),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingCacheTTL:  getEnvAsDuration("EMBEDDING_CACHE_TTL", 10*time.Minute),
			VectorStore:        getEnv("VECTOR_STORE", "pgvector"),

			LLMProvider: getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:    getEnv("LLM_MODEL", "gemini-2.0-flash"),
			GeminiURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

			TranslateURL: getEnv("TRANSLATE_BASE_URL", "https://translation.googleapis.com"),

			SimilarityThreshold: getEnvAsFloat("RAG_SIMILARITY_THRESHOLD", 0.75),
			TopK:                getEnvAsInt("RAG_TOP_K", 5),
			GenerationTimeout:   getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
			Strict:              getEnvAsBool("RAG_STRICT", false),
		},
		RateLimit: RateLimitConfig{
			ChatLimit:  getEnvAsInt("CHAT_RATE_LIMIT", 30),
			ChatWindow: getEnvAsDuration("CHAT_RATE_WINDOW", time.Minute),
		},
		Ingest: IngestConfig{
			Topic:     getEnv("INGEST_TOPIC_NAME", "INGEST_DOCUMENT"),
			ChunkSize: getEnvAsInt("INGEST_CHUNK_WORDS", 500),
			Overlap:   getEnvAsInt("INGEST_CHUNK_OVERLAP", 50),
			BatchSize: getEnvAsInt("INGEST_BATCH_SIZE", 100),
			UploadDir: getEnv("INGEST_UPLOAD_DIR", "./uploads"),
		},
		Otel: OtelConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "medassist-backend"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
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
