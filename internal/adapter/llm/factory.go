package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "MENSETSU_MODE"
	// ModeMock indicates the canned client should be used.
	ModeMock = "MOCK"
)

// NewCompleter creates a completion client based on the MENSETSU_MODE
// environment variable. MENSETSU_MODE=MOCK returns the canned client, so the
// server can run without a live Ollama instance.
func NewCompleter(baseURL, model string, timeout time.Duration) Completer {
	if os.Getenv(EnvMode) == ModeMock {
		log.Println("MENSETSU_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}
	return NewClient(baseURL, model, timeout)
}
