// Package config provides configuration for the interview backend.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// Completion backend
	OllamaURL   string
	OllamaModel string
	LLMTimeout  time.Duration

	// TLS; only used when both files are set
	CertFile string
	KeyFile  string

	// Audio handling
	AudioDir     string
	TmpDir       string
	WhisperModel string
}

// Load loads configuration from environment variables, reading a .env file
// first if one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Host:         getEnv("BACKEND_HOST", "0.0.0.0"),
		Port:         getEnvInt("BACKEND_PORT", 8001),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "gemma3"),
		LLMTimeout:   time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		CertFile:     getEnv("SSL_CERT_FILE", ""),
		KeyFile:      getEnv("SSL_KEY_FILE", ""),
		AudioDir:     getEnv("AUDIO_DIR", "static/audio"),
		TmpDir:       getEnv("TMP_DIR", "_tmp"),
		WhisperModel: getEnv("WHISPER_MODEL", "base"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
