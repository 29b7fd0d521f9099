package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/krambot/krambot/core"
)

// Key prefixes for different data types
const (
	messagePrefix     = "msg"
	messageUserPrefix = "msgu"
	messageIDSeq      = "msgseq"
)

// makeMessageKey generates a key for a message by ID.
func makeMessageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", messagePrefix, id))
}

// makeUserTimeKey generates a composite key for the per-user time index.
// Format: prefix:user:timestamp:id
func makeUserTimeKey(user core.ID, timestamp time.Time, id core.ID) []byte {
	prefix := messageUserPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+24) // 8 user + 8 timestamp + 8 id
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(user))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeUserPrefix generates the index prefix covering all of one user's
// messages.
func makeUserPrefix(user core.ID) []byte {
	prefix := messageUserPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(user))
	return buf
}

// makeUserSeekEnd generates a key past every index entry for the user, used
// as the starting point for reverse iteration.
func makeUserSeekEnd(user core.ID) []byte {
	prefix := makeUserPrefix(user)
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xff
	}
	return buf
}
