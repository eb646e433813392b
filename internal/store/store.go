// Package store holds per-session conversation state in memory. By default
// sessions live for the lifetime of the process; an optional TTL sweep can
// evict idle ones.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mensetsu-app/backend/internal/domain"
)

// entry pairs a session with its own lock so that concurrent turns against
// one session serialize without blocking turns on other sessions.
type entry struct {
	mu      sync.Mutex
	session *domain.Session
	touched atomic.Int64
}

// Store is an in-memory session store keyed by opaque session id.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	ttl      time.Duration
	interval time.Duration
	stop     chan struct{}
}

// Option configures the store.
type Option func(*Store)

// WithTTL evicts sessions that have been idle for longer than ttl, swept
// every interval.
func WithTTL(ttl, interval time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
		s.interval = interval
	}
}

// New creates an empty store. Without options nothing is ever evicted, so
// transcripts stay available until the process exits.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl > 0 {
		go s.sweep()
	}
	return s
}

// Close stops the eviction sweeper, if one is running.
func (s *Store) Close() {
	close(s.stop)
}

func (s *Store) sweep() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-s.ttl).UnixNano()
			s.mu.Lock()
			for id, e := range s.entries {
				if e.touched.Load() < cutoff {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Create validates the track, seeds the opening messages and returns the new
// session id together with the greeting shown to the client. No session is
// created when validation fails.
func (s *Store) Create(track domain.Track, field, target string) (string, string, error) {
	if !track.Valid() {
		return "", "", &domain.ValidationError{Field: "track", Reason: "track は『進学』か『就職』です"}
	}

	sid := uuid.New().String()
	sess := &domain.Session{
		SessionID: sid,
		Track:     track,
		Field:     field,
		Target:    target,
		CreatedAt: time.Now(),
		Messages:  domain.SeedMessages(track, field, target),
	}

	e := &entry{session: sess}
	e.touched.Store(time.Now().UnixNano())

	s.mu.Lock()
	s.entries[sid] = e
	s.mu.Unlock()

	return sid, sess.Messages[1].Content, nil
}

func (s *Store) lookup(sessionID string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.touched.Store(time.Now().UnixNano())
	return e, nil
}

// Get returns the session for sessionID.
func (s *Store) Get(sessionID string) (*domain.Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return e.session, nil
}

// Append adds one message to the session under its lock.
func (s *Store) Append(sessionID string, role domain.Role, content string) error {
	e, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.session.Messages = append(e.session.Messages, domain.Message{Role: role, Content: content})
	e.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the session's message list, safe to hand to a
// slow external call while other turns mutate the session.
func (s *Store) Snapshot(sessionID string) ([]domain.Message, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	msgs := make([]domain.Message, len(e.session.Messages))
	copy(msgs, e.session.Messages)
	return msgs, nil
}

// Acquire returns the session with its per-session lock held. The caller
// must call Release on every exit path. Holding the lock for a whole turn
// keeps the read-modify-append sequence of concurrent turns on the same
// session from interleaving.
func (s *Store) Acquire(sessionID string) (*Locked, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	return &Locked{e: e}, nil
}

// Locked is a session whose lock is held by the caller.
type Locked struct {
	e *entry
}

// Session returns the locked session.
func (l *Locked) Session() *domain.Session {
	return l.e.session
}

// Append adds one message to the locked session.
func (l *Locked) Append(role domain.Role, content string) {
	l.e.session.Messages = append(l.e.session.Messages, domain.Message{Role: role, Content: content})
}

// Snapshot returns a copy of the locked session's message list.
func (l *Locked) Snapshot() []domain.Message {
	msgs := make([]domain.Message, len(l.e.session.Messages))
	copy(msgs, l.e.session.Messages)
	return msgs
}

// Release releases the session lock.
func (l *Locked) Release() {
	l.e.mu.Unlock()
}
