package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromHandle generates a deterministic ID from an external user handle
// using BLAKE2b hashing. Identical handles always produce identical IDs.
func IDFromHandle(handle string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(handle))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Speaker identifies the source of a chat message.
type Speaker int

const (
	// SpeakerHuman represents a human user.
	SpeakerHuman Speaker = iota + 1
	// SpeakerAssistant represents the assistant.
	SpeakerAssistant
)

// Message represents a single turn in a conversation with one user.
type Message struct {
	Id         ID
	User       ID // owner of the conversation
	Speaker    Speaker
	Contents   string
	Timestamp  time.Time // When the message was originally sent
	InsertedAt time.Time // When the record was inserted into the database
}

// StoreRecord is one entry in the store catalog. Identity is positional:
// the catalog may legally contain duplicates, and each is scored on its own.
type StoreRecord struct {
	Brand    string `json:"brand"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Region   string `json:"region,omitempty"` // optional; empty means absent
	Schedule string `json:"schedule"`
}

// StoreQuery is a partial store description supplied by a caller.
// An empty string means the field is absent.
type StoreQuery struct {
	Brand   string
	City    string
	Region  string
	Address string
}

// Active reports whether at least one scored field (brand, city, address)
// is present. Region alone does not make a query active: it is a gate,
// not a scored field.
func (q StoreQuery) Active() bool {
	return !isBlank(q.Brand) || !isBlank(q.City) || !isBlank(q.Address)
}

// StoreMatch pairs a composite score with the matched store record.
// It lives only for the duration of one ranking call.
type StoreMatch struct {
	Store StoreRecord
	Score float64 // composite score on a 0-100 scale
	Index int     // position of the record in the catalog
}
