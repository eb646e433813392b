package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a session identifier is unknown.
var ErrNotFound = errors.New("invalid session")

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Stage labels the pipeline stage a turn failed in. The values double as the
// error prefixes surfaced to the client.
type Stage string

const (
	StageUpload       Stage = "upload_error"
	StageToolMissing  Stage = "ffmpeg_not_found"
	StageTranscode    Stage = "ffmpeg_error"
	StageTranscribe   Stage = "whisper_error"
	StageCompleteHTTP Stage = "ollama_http_error"
	StageCompleteConn Stage = "ollama_request_error"
)

// HTTPStatus maps a stage to the status code its failure is reported with.
func (s Stage) HTTPStatus() int {
	switch s {
	case StageUpload:
		return http.StatusBadRequest
	case StageCompleteHTTP, StageCompleteConn:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// StageError wraps a pipeline stage failure so the transport layer can map
// it to a status code without inspecting the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
