// Package domain defines the core domain models for the interview backend.
package domain

import "time"

// Role is the speaker tag on a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Track is the interview track selected when a session starts.
type Track string

const (
	// TrackAdmission is university/school admission practice.
	TrackAdmission Track = "進学"
	// TrackEmployment is job interview practice.
	TrackEmployment Track = "就職"
)

// Valid reports whether t is one of the two supported tracks.
func (t Track) Valid() bool {
	return t == TrackAdmission || t == TrackEmployment
}

// Message is a single utterance in a conversation. Messages are immutable
// once appended to a session.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session represents one ongoing interview conversation. The message list is
// insertion-ordered and only ever grows: system instruction, assistant
// greeting, then a user/assistant pair per completed turn.
type Session struct {
	SessionID string    `json:"session_id"`
	Track     Track     `json:"track"`
	Field     string    `json:"field"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}
