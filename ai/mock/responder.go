package mock

import (
	"context"
	"fmt"

	"github.com/krambot/krambot/ai"
)

// MockResponder is a test double for ai.Responder.
// It allows custom behavior injection via function fields.
type MockResponder struct {
	// ReplyFunc is called by Reply if set.
	// If nil, uses a default canned reply.
	ReplyFunc func(ctx context.Context, turns []ai.Turn) (string, error)

	callCount int
	lastTurns []ai.Turn
}

// NewMockResponder creates a mock responder with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

// Reply returns a canned reply echoing the last turn.
func (m *MockResponder) Reply(ctx context.Context, turns []ai.Turn) (string, error) {
	m.callCount++
	m.lastTurns = turns

	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, turns)
	}

	if len(turns) == 0 {
		return "mock reply", nil
	}
	return fmt.Sprintf("mock reply to: %s", turns[len(turns)-1].Contents), nil
}

// CallCount returns the number of times Reply was called.
func (m *MockResponder) CallCount() int {
	return m.callCount
}

// LastTurns returns the transcript passed to the most recent Reply call.
func (m *MockResponder) LastTurns() []ai.Turn {
	return m.lastTurns
}

// Reset clears the call count, recorded turns and custom functions.
func (m *MockResponder) Reset() {
	m.callCount = 0
	m.lastTurns = nil
	m.ReplyFunc = nil
}
