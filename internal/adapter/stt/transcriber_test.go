package stt

import (
	"context"
	"errors"
	"testing"
)

type fakeEngine struct {
	text string
	err  error
	lang string
}

func (f *fakeEngine) Transcribe(ctx context.Context, wavPath, language string) (string, error) {
	f.lang = language
	return f.text, f.err
}

func TestTranscribeTrims(t *testing.T) {
	engine := &fakeEngine{text: "  こんにちは \n"}
	tr := NewTranscriber(engine)

	text, err := tr.Transcribe(context.Background(), "in.wav")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "こんにちは" {
		t.Fatalf("text = %q", text)
	}
	if engine.lang != "ja" {
		t.Fatalf("language = %q, want ja", engine.lang)
	}
}

func TestTranscribeSilenceIsValid(t *testing.T) {
	tr := NewTranscriber(&fakeEngine{text: "   "})

	text, err := tr.Transcribe(context.Background(), "in.wav")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty transcript, got %q", text)
	}
}

func TestTranscribeWrapsEngineError(t *testing.T) {
	cause := errors.New("model load failed")
	tr := NewTranscriber(&fakeEngine{err: cause})

	_, err := tr.Transcribe(context.Background(), "in.wav")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped engine error, got %v", err)
	}
}
