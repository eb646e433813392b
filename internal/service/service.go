// Package service orchestrates the interview turn pipeline over the session
// store and the external audio and completion backends.
package service

import (
	"context"

	"github.com/mensetsu-app/backend/internal/adapter/llm"
	"github.com/mensetsu-app/backend/internal/config"
	"github.com/mensetsu-app/backend/internal/metrics"
	"github.com/mensetsu-app/backend/internal/store"
)

// Normalizer converts an uploaded recording into a 16 kHz mono WAV.
type Normalizer interface {
	Normalize(ctx context.Context, src, dst string) error
	Probe(ctx context.Context) error
}

// Transcriber converts a normalized WAV into trimmed text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
}

// Synthesizer renders text into a retrievable audio file.
type Synthesizer interface {
	Synthesize(ctx context.Context, sessionID, text string) (string, error)
}

// Service is the turn pipeline orchestrator.
type Service struct {
	store       *store.Store
	normalizer  Normalizer
	transcriber Transcriber
	completer   llm.Completer
	synthesizer Synthesizer
	metrics     *metrics.Metrics
	config      *config.Config
}

// New creates a new service.
func New(store *store.Store, normalizer Normalizer, transcriber Transcriber, completer llm.Completer, synthesizer Synthesizer, m *metrics.Metrics, cfg *config.Config) *Service {
	return &Service{
		store:       store,
		normalizer:  normalizer,
		transcriber: transcriber,
		completer:   completer,
		synthesizer: synthesizer,
		metrics:     m,
		config:      cfg,
	}
}
