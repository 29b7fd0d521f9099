package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krambot/krambot/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"handle-based ID", core.IDFromHandle("oleh_k")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalMessage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name    string
		message *core.Message
	}{
		{
			name: "full message",
			message: &core.Message{
				Id:         7,
				User:       core.IDFromHandle("oleh_k"),
				Speaker:    core.SpeakerHuman,
				Contents:   "Де найближча Наша Ряба у Покровську?",
				Timestamp:  now,
				InsertedAt: now,
			},
		},
		{
			name: "assistant reply",
			message: &core.Message{
				Id:         8,
				User:       core.IDFromHandle("oleh_k"),
				Speaker:    core.SpeakerAssistant,
				Contents:   "«Наша Ряба» — Покровськ, вул. Шевченка 1 (9-21)",
				Timestamp:  now.Add(-time.Minute),
				InsertedAt: now,
			},
		},
		{
			name: "empty contents still round-trips",
			message: &core.Message{
				Id:        1,
				Speaker:   core.SpeakerHuman,
				Timestamp: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalMessage(tt.message)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalMessage(data)
			require.NoError(t, err)

			assert.Equal(t, tt.message.Id, decoded.Id)
			assert.Equal(t, tt.message.User, decoded.User)
			assert.Equal(t, tt.message.Speaker, decoded.Speaker)
			assert.Equal(t, tt.message.Contents, decoded.Contents)
			assert.Equal(t, tt.message.Timestamp.UnixMicro(), decoded.Timestamp.UnixMicro())
			assert.Equal(t, tt.message.InsertedAt.UnixMicro(), decoded.InsertedAt.UnixMicro())
		})
	}
}

func TestUnmarshalMessage_Truncated(t *testing.T) {
	message := &core.Message{
		Id:        3,
		Speaker:   core.SpeakerHuman,
		Contents:  "hello",
		Timestamp: time.Now().UTC(),
	}
	data := MarshalMessage(message)

	_, err := UnmarshalMessage(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
