package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mensetsu-app/backend/internal/adapter/audio"
	"github.com/mensetsu-app/backend/internal/adapter/llm"
	"github.com/mensetsu-app/backend/internal/adapter/stt"
	"github.com/mensetsu-app/backend/internal/adapter/tts"
	"github.com/mensetsu-app/backend/internal/config"
	"github.com/mensetsu-app/backend/internal/metrics"
	"github.com/mensetsu-app/backend/internal/service"
	"github.com/mensetsu-app/backend/internal/store"
	transport "github.com/mensetsu-app/backend/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting interview backend...")
	log.Printf("Listen: %s:%d", cfg.Host, cfg.Port)
	log.Printf("Ollama URL: %s", cfg.OllamaURL)
	log.Printf("Ollama model: %s", cfg.OllamaModel)
	log.Printf("Audio dir: %s", cfg.AudioDir)

	if err := os.MkdirAll(cfg.AudioDir, 0o755); err != nil {
		log.Fatalf("Failed to create audio dir: %v", err)
	}
	if err := os.MkdirAll(cfg.TmpDir, 0o755); err != nil {
		log.Fatalf("Failed to create tmp dir: %v", err)
	}

	// Initialize store and adapters
	sessions := store.New()
	normalizer := audio.NewNormalizer()
	transcriber := stt.NewTranscriber(stt.NewWhisperEngine(cfg.WhisperModel))
	completer := llm.NewCompleter(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTimeout)
	synthesizer := tts.NewSynthesizer(tts.NewEspeakEngine(), cfg.AudioDir, "/static/audio")
	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize service and server
	svc := service.New(sessions, normalizer, transcriber, completer, synthesizer, m, cfg)
	server := transport.NewServer(svc, cfg.AudioDir)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		var err error
		if cfg.CertFile != "" && cfg.KeyFile != "" {
			err = server.StartTLS(addr, cfg.CertFile, cfg.KeyFile)
		} else {
			err = server.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown gracefully: %v", err)
	}

	log.Println("Interview backend stopped")
}
