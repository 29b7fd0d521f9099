package badger

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/krambot/krambot/core"
	"github.com/krambot/krambot/history"
)

// MessageRepository implements history.MessageRepository for BadgerDB.
type MessageRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ history.MessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(backend *Backend) (*MessageRepository, error) {
	idSeq, err := backend.GetSequence(messageIDSeq)
	if err != nil {
		return nil, err
	}

	return &MessageRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MessageRepository) Close() error {
	return r.idSeq.Release()
}

// AddMessages adds one or more messages to storage.
func (r *MessageRepository) AddMessages(ctx context.Context, messages ...*core.Message) ([]*core.Message, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, message := range messages {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			message.Id = core.ID(nextID)

			message.InsertedAt = time.Now().UTC()
			if message.Timestamp.IsZero() {
				message.Timestamp = message.InsertedAt
			}

			// Store primary record
			key := makeMessageKey(message.Id)
			value := history.MarshalMessage(message)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update the per-user time index
			indexKey := makeUserTimeKey(message.User, message.Timestamp, message.Id)
			if err := tx.Set(indexKey, history.MarshalID(message.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return messages, err
}

// GetMessage retrieves a single message by ID.
func (r *MessageRepository) GetMessage(ctx context.Context, id core.ID) (*core.Message, error) {
	var result *core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readMessage(tx, makeMessageKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return history.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// RecentMessages retrieves up to limit messages for a user, newest first.
func (r *MessageRepository) RecentMessages(ctx context.Context, user core.ID, limit int) ([]*core.Message, error) {
	var results []*core.Message
	err := r.walkUserNewestFirst(user, func(message *core.Message) (bool, error) {
		if len(results) >= limit {
			return false, nil
		}
		results = append(results, message)
		return len(results) < limit, nil
	})
	return results, err
}

// SearchMessages retrieves up to limit of the user's messages containing the
// query, case-insensitively, newest first.
func (r *MessageRepository) SearchMessages(ctx context.Context, user core.ID, query string, limit int) ([]*core.Message, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || limit < 1 {
		return nil, nil
	}

	var results []*core.Message
	err := r.walkUserNewestFirst(user, func(message *core.Message) (bool, error) {
		if strings.Contains(strings.ToLower(message.Contents), needle) {
			results = append(results, message)
		}
		return len(results) < limit, nil
	})
	return results, err
}

// CountMessages returns the number of stored messages for a user.
func (r *MessageRepository) CountMessages(ctx context.Context, user core.ID) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeUserPrefix(user)

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// DeleteOldest removes the n oldest messages for a user.
func (r *MessageRepository) DeleteOldest(ctx context.Context, user core.ID, n int) error {
	if n < 1 {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeUserPrefix(user)

		iter := tx.NewIterator(opts)

		// Oldest entries come first: the index sorts by timestamp ascending.
		type victim struct {
			indexKey []byte
			id       core.ID
		}
		victims := make([]victim, 0, n)
		for iter.Rewind(); iter.Valid() && len(victims) < n; iter.Next() {
			item := iter.Item()
			var id core.ID
			if err := item.Value(func(val []byte) error {
				var err error
				id, err = history.UnmarshalID(val)
				return err
			}); err != nil {
				iter.Close()
				return err
			}
			victims = append(victims, victim{indexKey: item.KeyCopy(nil), id: id})
		}
		iter.Close()

		for _, v := range victims {
			if err := tx.Delete(v.indexKey); err != nil {
				return err
			}
			if err := tx.Delete(makeMessageKey(v.id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteUserMessages removes all messages for a user.
func (r *MessageRepository) DeleteUserMessages(ctx context.Context, user core.ID) error {
	count, err := r.CountMessages(ctx, user)
	if err != nil {
		return err
	}
	return r.DeleteOldest(ctx, user, count)
}

// walkUserNewestFirst iterates one user's messages newest first, invoking fn
// for each. fn returns false to stop early.
func (r *MessageRepository) walkUserNewestFirst(user core.ID, fn func(*core.Message) (bool, error)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := makeUserPrefix(user)

		for iter.Seek(makeUserSeekEnd(user)); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = history.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			message, err := r.readMessage(tx, makeMessageKey(id))
			if err != nil {
				return err
			}
			if message == nil {
				continue
			}

			more, err := fn(message)
			if err != nil {
				return err
			}
			if !more {
				break
			}
		}
		return nil
	}, false)
}

// readMessage reads and deserializes one message; nil when the key is absent.
func (r *MessageRepository) readMessage(tx *badger.Txn, key []byte) (*core.Message, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var message *core.Message
	err = item.Value(func(val []byte) error {
		var err error
		message, err = history.UnmarshalMessage(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}
