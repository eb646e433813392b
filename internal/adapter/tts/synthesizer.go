// Package tts wraps the external text-to-speech engine. Synthesis is
// best-effort: the caller degrades to a text-only reply when it fails.
package tts

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Engine renders text into a WAV file at the given path.
type Engine interface {
	SpeakToFile(ctx context.Context, text, outPath string) error
}

// Synthesizer writes spoken replies into the audio directory and returns the
// URL path the client fetches them from. Output names carry the session id
// and a unix timestamp so concurrent turns on different sessions cannot
// collide.
type Synthesizer struct {
	engine   Engine
	audioDir string
	urlBase  string
}

// NewSynthesizer creates a synthesizer writing into audioDir, served under
// urlBase (e.g. "/static/audio").
func NewSynthesizer(engine Engine, audioDir, urlBase string) *Synthesizer {
	return &Synthesizer{engine: engine, audioDir: audioDir, urlBase: urlBase}
}

// Synthesize renders text to <audioDir>/<sessionID>-<unixTS>.wav and returns
// the URL path it is served from.
func (s *Synthesizer) Synthesize(ctx context.Context, sessionID, text string) (string, error) {
	name := fmt.Sprintf("%s-%d.wav", sessionID, time.Now().Unix())
	if err := s.engine.SpeakToFile(ctx, text, filepath.Join(s.audioDir, name)); err != nil {
		return "", err
	}
	return s.urlBase + "/" + name, nil
}
