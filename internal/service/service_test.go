package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/mensetsu-app/backend/internal/adapter/audio"
	"github.com/mensetsu-app/backend/internal/adapter/llm"
	"github.com/mensetsu-app/backend/internal/config"
	"github.com/mensetsu-app/backend/internal/domain"
	"github.com/mensetsu-app/backend/internal/metrics"
	"github.com/mensetsu-app/backend/internal/service"
	"github.com/mensetsu-app/backend/internal/store"
)

type fakeNormalizer struct {
	err      error
	probeErr error
}

func (f *fakeNormalizer) Normalize(ctx context.Context, src, dst string) error { return f.err }
func (f *fakeNormalizer) Probe(ctx context.Context) error                      { return f.probeErr }

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	return f.text, f.err
}

type fakeCompleter struct {
	reply string
	err   error
	got   []domain.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	f.got = append([]domain.Message(nil), messages...)
	return f.reply, f.err
}

func (f *fakeCompleter) BaseURL() string { return "http://fake:11434" }
func (f *fakeCompleter) Model() string   { return "fake-model" }

type fakeSynthesizer struct {
	url string
	err error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, sessionID, text string) (string, error) {
	return f.url, f.err
}

type fixture struct {
	svc         *service.Service
	store       *store.Store
	sessionID   string
	normalizer  *fakeNormalizer
	transcriber *fakeTranscriber
	completer   *fakeCompleter
	synthesizer *fakeSynthesizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:       store.New(),
		normalizer:  &fakeNormalizer{},
		transcriber: &fakeTranscriber{text: "よろしくお願いします"},
		completer:   &fakeCompleter{reply: "では一問目です。"},
		synthesizer: &fakeSynthesizer{url: "/static/audio/x.wav"},
	}

	cfg := &config.Config{
		TmpDir:   t.TempDir(),
		AudioDir: t.TempDir(),
	}
	f.svc = service.New(f.store, f.normalizer, f.transcriber, f.completer, f.synthesizer, metrics.New(prometheus.NewRegistry()), cfg)

	sid, _, err := f.svc.StartSession(domain.TrackAdmission, "情報工学", "東都大学")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	f.sessionID = sid
	return f
}

func (f *fixture) turn(ctx context.Context) (*service.TurnResult, error) {
	return f.svc.Turn(ctx, f.sessionID, "rec.webm", strings.NewReader("fake audio bytes"))
}

func (f *fixture) messages(t *testing.T) []domain.Message {
	t.Helper()
	msgs, err := f.store.Snapshot(f.sessionID)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	return msgs
}

func TestStartSessionRejectsUnknownTrack(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.StartSession(domain.Track("invalid"), "x", "y")
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestTurnSuccess(t *testing.T) {
	f := newFixture(t)

	result, err := f.turn(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "よろしくお願いします", result.UserText)
	assert.Equal(t, "では一問目です。", result.AssistantText)
	assert.Equal(t, "/static/audio/x.wav", result.AudioURL)

	msgs := f.messages(t)
	assert.Len(t, msgs, 4)
	assert.Equal(t, domain.RoleUser, msgs[2].Role)
	assert.Equal(t, domain.RoleAssistant, msgs[3].Role)
	assert.Equal(t, "では一問目です。", msgs[3].Content)

	// The completion call saw the conversation up to and including the new
	// user message, not the assistant reply.
	assert.Len(t, f.completer.got, 3)
	assert.Equal(t, domain.RoleUser, f.completer.got[2].Role)
}

func TestTurnUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Turn(context.Background(), "missing", "rec.webm", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTurnTranscodeFailure(t *testing.T) {
	f := newFixture(t)
	f.normalizer.err = errors.New("exit status 1")

	_, err := f.turn(context.Background())
	var stageErr *domain.StageError
	assert.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageTranscode, stageErr.Stage)
	assert.Len(t, f.messages(t), 2)
}

func TestTurnToolMissing(t *testing.T) {
	f := newFixture(t)
	f.normalizer.err = fmt.Errorf("%w: exec", audio.ErrToolMissing)

	_, err := f.turn(context.Background())
	var stageErr *domain.StageError
	assert.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageToolMissing, stageErr.Stage)
}

func TestTurnTranscribeFailureAppendsNothing(t *testing.T) {
	f := newFixture(t)
	f.transcriber.err = errors.New("engine crashed")

	_, err := f.turn(context.Background())
	var stageErr *domain.StageError
	assert.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageTranscribe, stageErr.Stage)
	assert.Len(t, f.messages(t), 2)
}

// A completion failure aborts the turn but keeps the already-appended user
// message, so the utterance survives for the next attempt.
func TestTurnCompletionFailureKeepsUserMessage(t *testing.T) {
	f := newFixture(t)
	f.completer.err = &llm.HTTPError{Status: 500, Body: "boom"}

	_, err := f.turn(context.Background())
	var stageErr *domain.StageError
	assert.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageCompleteHTTP, stageErr.Stage)

	msgs := f.messages(t)
	assert.Len(t, msgs, 3)
	assert.Equal(t, domain.RoleUser, msgs[2].Role)
	assert.Equal(t, "よろしくお願いします", msgs[2].Content)
}

func TestTurnCompletionTransportFailure(t *testing.T) {
	f := newFixture(t)
	f.completer.err = errors.New("connection refused")

	_, err := f.turn(context.Background())
	var stageErr *domain.StageError
	assert.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageCompleteConn, stageErr.Stage)
}

func TestTurnSynthesisFailureDegrades(t *testing.T) {
	f := newFixture(t)
	f.synthesizer.err = errors.New("no tts engine")

	result, err := f.turn(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "", result.AudioURL)
	assert.Equal(t, "では一問目です。", result.AssistantText)
	assert.Len(t, f.messages(t), 4)
}

func TestTurnEmptyTranscriptProceeds(t *testing.T) {
	f := newFixture(t)
	f.transcriber.text = ""

	result, err := f.turn(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "", result.UserText)

	// The empty user turn still reached the completion backend.
	assert.Len(t, f.completer.got, 3)
	assert.Equal(t, domain.RoleUser, f.completer.got[2].Role)
	assert.Equal(t, "", f.completer.got[2].Content)
}

func TestEndSessionAsksForSummary(t *testing.T) {
	f := newFixture(t)
	f.completer.reply = "総評です。"

	summary, err := f.svc.EndSession(context.Background(), f.sessionID)
	assert.NoError(t, err)
	assert.Equal(t, "総評です。", summary)

	// The one-off instruction is not persisted on the session.
	assert.Len(t, f.messages(t), 2)
	assert.Equal(t, domain.SummaryPrompt, f.completer.got[len(f.completer.got)-1].Content)
}

func TestEndSessionFallsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.completer.err = errors.New("backend down")

	summary, err := f.svc.EndSession(context.Background(), f.sessionID)
	assert.NoError(t, err)
	assert.Equal(t, domain.SummaryFallback, summary)
}

func TestEndSessionUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.EndSession(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHealthReport(t *testing.T) {
	f := newFixture(t)

	report := f.svc.Health(context.Background())
	assert.Equal(t, "http://fake:11434", report.OllamaURL)
	assert.Equal(t, "fake-model", report.OllamaModel)
	assert.True(t, report.AudioDirExists)
	assert.Equal(t, "ok", report.FFmpeg)

	f.normalizer.probeErr = errors.New("not installed")
	report = f.svc.Health(context.Background())
	assert.Equal(t, "error: not installed", report.FFmpeg)
}
