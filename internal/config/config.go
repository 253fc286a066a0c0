package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App AppConfig
	Ai  AIConfig
	Rag RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadBodyLimitMB  int
}

type AIConfig struct {
	OllamaBaseURL      string
	EmbeddingModel     string
	DefaultChatModel   string
	ChatTimeoutSeconds int
	SearchEnabled      bool
}

type RagConfig struct {
	DBPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			UploadBodyLimitMB:  getEnvAsInt("UPLOAD_BODY_LIMIT_MB", 10),
		},
		Ai: AIConfig{
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:     getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			DefaultChatModel:   getEnv("LLM_MODEL", "llama3"),
			ChatTimeoutSeconds: getEnvAsInt("CHAT_TIMEOUT_SECONDS", 120),
			SearchEnabled:      getEnvAsBool("SEARCH_ENABLED", true),
		},
		Rag: RagConfig{
			DBPath: getEnv("RAG_DB_PATH", "rag_db.json"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
