package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Agent   AgentConfig
	Session SessionConfig
	Papers  PapersConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AgentConfig struct {
	// ConfigFilePath is where the mutable agent configuration record is
	// persisted between restarts.
	ConfigFilePath string
	// FallbackAPIKey is the process-wide cloud credential used when the
	// stored configuration carries none.
	FallbackAPIKey string
	OllamaBaseURL  string
	RequestTimeout time.Duration
}

type SessionConfig struct {
	MaxHistoryTurns int
	IdleTTL         time.Duration
	SweepInterval   time.Duration
}

type PapersConfig struct {
	Dir string
	// RetrieverURL points at the external vector-index service that
	// ingests papers and performs similarity search over them.
	RetrieverURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Agent: AgentConfig{
			ConfigFilePath: getEnv("AGENT_CONFIG_PATH", "config.json"),
			FallbackAPIKey: getEnv("ALGODRAFT_API_KEY", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			RequestTimeout: time.Duration(getEnvAsInt("AGENT_REQUEST_TIMEOUT_SECONDS", 300)) * time.Second,
		},
		Session: SessionConfig{
			MaxHistoryTurns: getEnvAsInt("SESSION_MAX_HISTORY_TURNS", 10),
			IdleTTL:         time.Duration(getEnvAsInt("SESSION_TTL_SECONDS", 1800)) * time.Second,
			SweepInterval:   time.Duration(getEnvAsInt("SESSION_SWEEP_SECONDS", 600)) * time.Second,
		},
		Papers: PapersConfig{
			Dir:          getEnv("PAPERS_DIR", "papers"),
			RetrieverURL: getEnv("RETRIEVER_URL", "http://localhost:8001"),
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
