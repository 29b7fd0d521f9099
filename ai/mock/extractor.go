package mock

import (
	"context"
	"strings"

	"github.com/krambot/krambot/ai"
	"github.com/krambot/krambot/core"
)

// MockIntentExtractor is a test double for ai.IntentExtractor.
// It allows custom behavior injection via function fields.
type MockIntentExtractor struct {
	// ExtractIntentFunc is called by ExtractIntent if set.
	// If nil, uses a simple keyword heuristic.
	ExtractIntentFunc func(ctx context.Context, text string) (ai.Intent, error)

	callCount int
}

// NewMockIntentExtractor creates a mock intent extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockIntentExtractor() *MockIntentExtractor {
	return &MockIntentExtractor{}
}

// ExtractIntent classifies text with a trivial heuristic.
// Default behavior: a message containing "магазин" or "store" becomes a
// store search with the remainder as the brand; anything else is
// conversational.
func (m *MockIntentExtractor) ExtractIntent(ctx context.Context, text string) (ai.Intent, error) {
	m.callCount++

	if m.ExtractIntentFunc != nil {
		return m.ExtractIntentFunc(ctx, text)
	}

	lowered := strings.ToLower(text)
	for _, marker := range []string{"магазин", "store"} {
		if idx := strings.Index(lowered, marker); idx >= 0 {
			brand := strings.TrimSpace(text[idx+len(marker):])
			return ai.Intent{
				Kind:  ai.IntentStoreSearch,
				Store: &core.StoreQuery{Brand: brand},
			}, nil
		}
	}
	return ai.Intent{Kind: ai.IntentConversational}, nil
}

// CallCount returns the number of times ExtractIntent was called.
func (m *MockIntentExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentExtractor) Reset() {
	m.callCount = 0
	m.ExtractIntentFunc = nil
}
