// Copyright 2026 Krambot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package history

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/krambot/krambot/core"
)

// Message serializers are written by hand against the MUS primitives; the
// record is flat and small enough that generated code would cost more than
// it saves. Timestamps travel as Unix microseconds.

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalMessage serializes a Message to bytes.
func MarshalMessage(message *core.Message) []byte {
	ts := message.Timestamp.UnixMicro()
	ins := message.InsertedAt.UnixMicro()

	size := varint.Uint64.Size(uint64(message.Id)) +
		varint.Uint64.Size(uint64(message.User)) +
		varint.Int.Size(int(message.Speaker)) +
		ord.String.Size(message.Contents) +
		varint.Int64.Size(ts) +
		varint.Int64.Size(ins)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(message.Id), buf)
	n += varint.Uint64.Marshal(uint64(message.User), buf[n:])
	n += varint.Int.Marshal(int(message.Speaker), buf[n:])
	n += ord.String.Marshal(message.Contents, buf[n:])
	n += varint.Int64.Marshal(ts, buf[n:])
	varint.Int64.Marshal(ins, buf[n:])
	return buf
}

// UnmarshalMessage deserializes a Message from bytes.
func UnmarshalMessage(data []byte) (*core.Message, error) {
	var (
		message core.Message
		n       int
	)

	id, c, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	n += c

	user, c, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: user: %w", ErrSerializationFailed, err)
	}
	n += c

	speaker, c, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: speaker: %w", ErrSerializationFailed, err)
	}
	n += c

	contents, c, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: contents: %w", ErrSerializationFailed, err)
	}
	n += c

	ts, c, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp: %w", ErrSerializationFailed, err)
	}
	n += c

	ins, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: inserted at: %w", ErrSerializationFailed, err)
	}

	message.Id = core.ID(id)
	message.User = core.ID(user)
	message.Speaker = core.Speaker(speaker)
	message.Contents = contents
	message.Timestamp = time.UnixMicro(ts).UTC()
	message.InsertedAt = time.UnixMicro(ins).UTC()
	return &message, nil
}
