package service

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mensetsu-app/backend/internal/adapter/audio"
	"github.com/mensetsu-app/backend/internal/adapter/llm"
	"github.com/mensetsu-app/backend/internal/domain"
	"github.com/mensetsu-app/backend/internal/store"
)

// TurnResult is what a completed turn returns to the client. AudioURL is
// empty when synthesis failed; the text reply is always authoritative.
type TurnResult struct {
	UserText      string
	AssistantText string
	AudioURL      string
}

// Turn runs one full pipeline pass for an uploaded utterance: save upload,
// normalize, transcribe, complete, synthesize. The per-session lock is held
// for the whole turn so concurrent turns against the same session cannot
// interleave their appends.
//
// A stage failure aborts the remaining stages but never rolls back appends
// that happened before it: a completion failure leaves the user message in
// place for the next attempt.
func (s *Service) Turn(ctx context.Context, sessionID, filename string, upload io.Reader) (*TurnResult, error) {
	locked, err := s.store.Acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer locked.Release()

	s.metrics.TurnsStarted.Inc()

	result, err := s.runTurn(ctx, locked, filename, upload)
	if err != nil {
		var stageErr *domain.StageError
		if errors.As(err, &stageErr) {
			s.metrics.TurnsFailed.WithLabelValues(string(stageErr.Stage)).Inc()
		}
		return nil, err
	}
	s.metrics.TurnsCompleted.Inc()
	return result, nil
}

func (s *Service) runTurn(ctx context.Context, locked *store.Locked, filename string, upload io.Reader) (*TurnResult, error) {
	src, err := s.saveUpload(filename, upload)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageUpload, Err: err}
	}
	defer os.Remove(src)

	wav := strings.TrimSuffix(src, filepath.Ext(src)) + ".wav"
	start := time.Now()
	if err := s.normalizer.Normalize(ctx, src, wav); err != nil {
		stage := domain.StageTranscode
		if errors.Is(err, audio.ErrToolMissing) {
			stage = domain.StageToolMissing
		}
		return nil, &domain.StageError{Stage: stage, Err: err}
	}
	s.observe("normalize", start)
	defer os.Remove(wav)

	// An empty transcript is a valid silent turn and still reaches the
	// completion backend.
	start = time.Now()
	userText, err := s.transcriber.Transcribe(ctx, wav)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageTranscribe, Err: err}
	}
	s.observe("transcribe", start)

	locked.Append(domain.RoleUser, userText)

	start = time.Now()
	assistantText, err := s.completer.Complete(ctx, locked.Snapshot())
	if err != nil {
		stage := domain.StageCompleteConn
		var httpErr *llm.HTTPError
		if errors.As(err, &httpErr) {
			stage = domain.StageCompleteHTTP
		}
		return nil, &domain.StageError{Stage: stage, Err: err}
	}
	s.observe("complete", start)

	locked.Append(domain.RoleAssistant, assistantText)

	sessionID := locked.Session().SessionID
	start = time.Now()
	audioURL, err := s.synthesizer.Synthesize(ctx, sessionID, assistantText)
	if err != nil {
		log.Printf("WARN: synthesis failed for session %s: %v", sessionID, err)
		s.metrics.SynthesisFailures.Inc()
		audioURL = ""
	}
	s.observe("synthesize", start)

	return &TurnResult{
		UserText:      userText,
		AssistantText: assistantText,
		AudioURL:      audioURL,
	}, nil
}

// saveUpload writes the uploaded recording into the scratch dir under a
// fresh name, keeping the original extension as the container hint.
func (s *Service) saveUpload(filename string, upload io.Reader) (string, error) {
	if err := os.MkdirAll(s.config.TmpDir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" || ext == ".wav" {
		ext = ".webm"
	}
	dst := filepath.Join(s.config.TmpDir, uuid.New().String()+ext)

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, upload); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

func (s *Service) observe(stage string, start time.Time) {
	s.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
