// Package stt wraps the external speech-to-text engine.
package stt

import (
	"context"
	"fmt"
	"strings"
)

// targetLanguage is fixed: the interview is conducted in Japanese.
const targetLanguage = "ja"

// Engine is the external speech recognizer.
type Engine interface {
	// Transcribe converts the WAV file at wavPath into text in the given
	// language.
	Transcribe(ctx context.Context, wavPath, language string) (string, error)
}

// Transcriber converts normalized waveforms into trimmed text. An empty
// transcript (silence, inaudible audio) is a valid result, not an error.
type Transcriber struct {
	engine Engine
}

// NewTranscriber creates a transcriber backed by the given engine.
func NewTranscriber(engine Engine) *Transcriber {
	return &Transcriber{engine: engine}
}

// Transcribe returns the trimmed transcript of the WAV file at wavPath.
func (t *Transcriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	text, err := t.engine.Transcribe(ctx, wavPath, targetLanguage)
	if err != nil {
		return "", fmt.Errorf("speech engine: %w", err)
	}
	return strings.TrimSpace(text), nil
}
