package history

import (
	"context"
	"log/slog"

	"github.com/panjf2000/ants/v2"

	"github.com/krambot/krambot/core"
)

// DefaultRetention is the number of messages kept per user. Once a user's
// history grows past it, the oldest messages are trimmed asynchronously.
const DefaultRetention = 30

// Recorder appends conversation turns to a repository and keeps each user's
// history within a retention cap. Appends are synchronous; trims run on a
// worker pool so replies are never blocked on cleanup.
type Recorder struct {
	repository MessageRepository
	retention  int
	trimPool   *ants.Pool
	logger     *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder) error

// WithRetention sets how many messages are kept per user.
// Default is DefaultRetention. Values below 1 disable trimming.
func WithRetention(retention int) RecorderOption {
	return func(r *Recorder) error {
		r.retention = retention
		return nil
	}
}

// WithRecorderLogger sets a custom logger.
// Default is slog.Default().
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecorder creates a new Recorder over the given repository.
func NewRecorder(repository MessageRepository, opts ...RecorderOption) (*Recorder, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	trimPool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		repository: repository,
		retention:  DefaultRetention,
		trimPool:   trimPool,
		logger:     slog.Default().With("component", "recorder"),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// RecordUser appends a message spoken by the user.
func (r *Recorder) RecordUser(ctx context.Context, user core.ID, contents string) (*core.Message, error) {
	return r.record(ctx, user, core.SpeakerHuman, contents)
}

// RecordAssistant appends a message spoken by the assistant.
func (r *Recorder) RecordAssistant(ctx context.Context, user core.ID, contents string) (*core.Message, error) {
	return r.record(ctx, user, core.SpeakerAssistant, contents)
}

func (r *Recorder) record(ctx context.Context, user core.ID, speaker core.Speaker, contents string) (*core.Message, error) {
	message := &core.Message{
		User:     user,
		Speaker:  speaker,
		Contents: contents,
	}
	if err := core.ValidateMessage(message); err != nil {
		return nil, err
	}

	added, err := r.repository.AddMessages(ctx, message)
	if err != nil {
		return nil, err
	}

	r.submitTrim(user)
	return added[0], nil
}

// submitTrim schedules a retention trim for the user. Trim failures are
// logged, never surfaced to the caller.
func (r *Recorder) submitTrim(user core.ID) {
	if r.retention < 1 {
		return
	}

	err := r.trimPool.Submit(func() {
		count, err := r.repository.CountMessages(context.Background(), user)
		if err != nil {
			r.logger.Error("error counting messages for trim", "user", user, "err", err)
			return
		}
		if count <= r.retention {
			return
		}
		if err := r.repository.DeleteOldest(context.Background(), user, count-r.retention); err != nil {
			r.logger.Error("error trimming history", "user", user, "err", err)
		}
	})
	if err != nil {
		r.logger.Warn("trim not scheduled", "user", user, "err", err)
	}
}

// Release releases the trim worker pool.
// The recorder should not be used after calling Release.
func (r *Recorder) Release() {
	if r.trimPool != nil {
		r.trimPool.Release()
	}
}
