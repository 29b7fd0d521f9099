package ai

import (
	"context"

	"github.com/krambot/krambot/core"
)

// Turn is a single entry of a conversation transcript passed to a Responder.
type Turn struct {
	// Speaker identifies who produced the turn.
	Speaker core.Speaker

	// Contents is the text of the turn.
	Contents string
}

// IntentKind tags the outcome of intent extraction.
type IntentKind int

const (
	// IntentConversational means the message carries no store-search request
	// and should be answered as ordinary conversation.
	IntentConversational IntentKind = iota

	// IntentStoreSearch means the message asks where to find a store and the
	// Intent carries the extracted query fields.
	IntentStoreSearch
)

// String returns a human-readable name for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentConversational:
		return "conversational"
	case IntentStoreSearch:
		return "store_search"
	default:
		return "unknown"
	}
}

// Intent is the structured result of analyzing one user message.
// Store is populated only when Kind is IntentStoreSearch.
type Intent struct {
	Kind  IntentKind
	Store *core.StoreQuery
}

// Responder generates assistant replies from a conversation transcript.
// Implementations must be thread-safe for concurrent use.
type Responder interface {
	// Reply generates the assistant's next utterance given the transcript,
	// oldest turn first. Returns an error if generation fails.
	Reply(ctx context.Context, turns []Turn) (string, error)
}

// IntentExtractor classifies a user message and extracts store-search fields.
// Implementations must be thread-safe for concurrent use.
type IntentExtractor interface {
	// ExtractIntent analyzes a single user message. When the message asks
	// about store locations it returns IntentStoreSearch with the mentioned
	// brand, city, region and address fields; otherwise it returns
	// IntentConversational. Implementations should degrade to a
	// conversational intent rather than fail on unparseable model output.
	ExtractIntent(ctx context.Context, text string) (Intent, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Responder and IntentExtractor
// instances, ensuring they share configuration appropriately.
type Provider interface {
	// Responder returns the reply generation service.
	// The returned Responder is safe for concurrent use.
	Responder() Responder

	// IntentExtractor returns the intent extraction service.
	// The returned IntentExtractor is safe for concurrent use.
	IntentExtractor() IntentExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
