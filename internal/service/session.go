package service

import (
	"context"
	"log"

	"github.com/mensetsu-app/backend/internal/domain"
)

// StartSession validates the track and creates a new session seeded with the
// system instruction and the track-dependent greeting.
func (s *Service) StartSession(track domain.Track, field, target string) (string, string, error) {
	sid, greeting, err := s.store.Create(track, field, target)
	if err != nil {
		return "", "", err
	}
	s.metrics.SessionsStarted.Inc()
	return sid, greeting, nil
}

// EndSession produces a retrospective summary of the interview. Summary
// generation is best-effort: any completion failure yields the fixed
// fallback text, never an error. The session itself is not mutated, so the
// transcript stays available afterwards.
func (s *Service) EndSession(ctx context.Context, sessionID string) (string, error) {
	msgs, err := s.store.Snapshot(sessionID)
	if err != nil {
		return "", err
	}

	msgs = append(msgs, domain.Message{Role: domain.RoleUser, Content: domain.SummaryPrompt})
	summary, err := s.completer.Complete(ctx, msgs)
	if err != nil {
		log.Printf("WARN: summary generation failed for session %s: %v", sessionID, err)
		s.metrics.SummaryFallbacks.Inc()
		summary = domain.SummaryFallback
	}
	s.metrics.SessionsEnded.Inc()
	return summary, nil
}
