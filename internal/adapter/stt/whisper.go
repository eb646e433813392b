package stt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WhisperEngine runs the whisper CLI against a WAV file and reads the text
// output it writes next to the input.
type WhisperEngine struct {
	binary string
	model  string
}

// Ensure WhisperEngine implements Engine interface.
var _ Engine = (*WhisperEngine)(nil)

// NewWhisperEngine creates an engine for the given model size/variant
// (e.g. "base").
func NewWhisperEngine(model string) *WhisperEngine {
	return &WhisperEngine{binary: "whisper", model: model}
}

// Transcribe runs whisper and returns the raw transcript.
func (w *WhisperEngine) Transcribe(ctx context.Context, wavPath, language string) (string, error) {
	cmd := exec.CommandContext(ctx, w.binary, wavPath,
		"--model", w.model,
		"--language", language,
		"--output_format", "txt",
		"--output_dir", filepath.Dir(wavPath),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("whisper: %v: %s", err, out)
	}

	txtPath := strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("whisper output: %w", err)
	}
	defer os.Remove(txtPath)

	return string(data), nil
}
