package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// EspeakEngine shells out to espeak-ng to render Japanese speech.
type EspeakEngine struct {
	binary string
	voice  string
}

// Ensure EspeakEngine implements Engine interface.
var _ Engine = (*EspeakEngine)(nil)

// NewEspeakEngine creates an engine using the ja voice.
func NewEspeakEngine() *EspeakEngine {
	return &EspeakEngine{binary: "espeak-ng", voice: "ja"}
}

// SpeakToFile renders text as a WAV file at outPath.
func (e *EspeakEngine) SpeakToFile(ctx context.Context, text, outPath string) error {
	cmd := exec.CommandContext(ctx, e.binary, "-v", e.voice, "-w", outPath, text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak-ng: %v: %s", err, bytes.TrimSpace(out))
	}
	return nil
}
