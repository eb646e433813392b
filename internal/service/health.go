package service

import (
	"context"
	"fmt"
	"os"
)

// HealthReport describes the state of the backend's external dependencies.
type HealthReport struct {
	OllamaURL      string `json:"ollama_url"`
	OllamaModel    string `json:"ollama_model"`
	AudioDirExists bool   `json:"audio_dir_exists"`
	FFmpeg         string `json:"ffmpeg"`
}

// Health probes the transcoder and reports the completion backend
// configuration. It never fails.
func (s *Service) Health(ctx context.Context) *HealthReport {
	report := &HealthReport{
		OllamaURL:   s.completer.BaseURL(),
		OllamaModel: s.completer.Model(),
		FFmpeg:      "ok",
	}
	if _, err := os.Stat(s.config.AudioDir); err == nil {
		report.AudioDirExists = true
	}
	if err := s.normalizer.Probe(ctx); err != nil {
		report.FFmpeg = fmt.Sprintf("error: %v", err)
	}
	return report
}
