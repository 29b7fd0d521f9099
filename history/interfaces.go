package history

import (
	"context"

	"github.com/krambot/krambot/core"
)

// MessageRepository provides operations for managing per-user chat messages.
// Implementations must be thread-safe and support concurrent access.
type MessageRepository interface {
	// AddMessages adds one or more messages to storage.
	// For messages with ID=0, generates new IDs from sequence.
	// Sets InsertedAt; a zero Timestamp is filled with the current time.
	// Returns the messages with generated IDs and timestamps populated.
	AddMessages(ctx context.Context, messages ...*core.Message) ([]*core.Message, error)

	// GetMessage retrieves a single message by ID.
	// Returns ErrNotFound if the message doesn't exist.
	GetMessage(ctx context.Context, id core.ID) (*core.Message, error)

	// RecentMessages retrieves up to limit messages for a user, newest
	// first. A limit below 1 yields no messages.
	RecentMessages(ctx context.Context, user core.ID, limit int) ([]*core.Message, error)

	// SearchMessages retrieves up to limit of the user's messages whose
	// contents contain the query, case-insensitively, newest first.
	SearchMessages(ctx context.Context, user core.ID, query string, limit int) ([]*core.Message, error)

	// CountMessages returns the number of stored messages for a user.
	CountMessages(ctx context.Context, user core.ID) (int, error)

	// DeleteOldest removes the n oldest messages for a user. Removing more
	// messages than exist is not an error.
	DeleteOldest(ctx context.Context, user core.ID, n int) error

	// DeleteUserMessages removes all messages for a user.
	DeleteUserMessages(ctx context.Context, user core.ID) error

	// Close closes the repository and releases resources.
	Close() error
}
