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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - Contents must not be blank (whitespace-only counts as empty)
//   - Speaker must be valid (Human or Assistant)
//   - Timestamp must not be in the future
//
// NOT validated:
//   - ID (0 is valid from database sequences)
//   - User (0 is a legal hash value)
func ValidateMessage(message *Message) error {
	if message == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if isBlank(message.Contents) {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyContent)
	}

	if err := ValidateSpeaker(message.Speaker); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if !IsValidTimestamp(message.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateStoreRecord validates a StoreRecord according to domain rules.
// A record must carry at least one nonblank field to be worth scoring;
// otherwise it could only ever produce zero-score matches.
func ValidateStoreRecord(record *StoreRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidStoreRecord)
	}

	if isBlank(record.Brand) && isBlank(record.City) && isBlank(record.Address) &&
		isBlank(record.Region) && isBlank(record.Schedule) {
		return fmt.Errorf("%w: %w", ErrInvalidStoreRecord, ErrEmptyStoreRecord)
	}

	return nil
}

// ValidateSpeaker validates that a Speaker has a valid value.
func ValidateSpeaker(speaker Speaker) error {
	if speaker != SpeakerHuman && speaker != SpeakerAssistant {
		return fmt.Errorf("%w: value %d", ErrInvalidSpeaker, speaker)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
