package llm

import (
	"context"
	"strings"

	"github.com/mensetsu-app/backend/internal/domain"
)

// MockClient is a canned implementation of Completer for offline development.
type MockClient struct{}

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements Completer interface.
var _ Completer = (*MockClient)(nil)

// Complete returns a canned interviewer question, or a canned summary when
// the last message asks for the retrospective.
func (m *MockClient) Complete(_ context.Context, messages []domain.Message) (string, error) {
	if len(messages) > 0 {
		last := messages[len(messages)-1]
		if last.Role == domain.RoleUser && strings.Contains(last.Content, "まとめてください") {
			return "- 良かった点: 受け答えが簡潔でした。\n- 改善点: 具体例を増やしましょう。\n- 次回までの宿題: 志望動機を3文で書き直してください。", nil
		}
	}
	return "ありがとうございます。では、あなたの長所を一つ、具体的なエピソードを添えて教えてください。", nil
}

// BaseURL returns a placeholder URL.
func (m *MockClient) BaseURL() string { return "mock://" }

// Model returns a placeholder model identifier.
func (m *MockClient) Model() string { return "mock" }
