// Package storage defines the Storage interface, the contract any
// persistence backend must satisfy to hold the student roster.
//
// WHY A BLOB?
// ───────────
// The roster is small and always read and written as a whole: load it
// once at startup, save the full list after every mutation. A backend
// only has to store one document under one key, atomically per call.
// Identity, ordering, and the id counter belong to package store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aanand-mishra/students-roster/internal/types"
)

var (
	// ErrEmpty means nothing has been saved yet under the roster key.
	ErrEmpty = errors.New("storage: no roster saved")
	// ErrCorrupt means a blob exists but cannot be decoded into records.
	ErrCorrupt = errors.New("storage: roster blob is corrupt")
)

// Storage is the persistence contract.
type Storage interface {
	// Load returns the saved roster. It returns ErrEmpty when nothing was
	// saved and an error wrapping ErrCorrupt when the blob is unreadable.
	Load() ([]types.Student, error)

	// Save replaces the saved roster with students.
	Save(students []types.Student) error
}

// Encode serializes the roster into the blob format shared by all
// backends: a JSON array of records.
func Encode(students []types.Student) ([]byte, error) {
	if students == nil {
		students = []types.Student{}
	}
	blob, err := json.Marshal(students)
	if err != nil {
		return nil, fmt.Errorf("storage.Encode: %w", err)
	}
	return blob, nil
}

// Decode parses a blob written by Encode. Anything that is not an array
// of objects carrying id, name, nim and address is reported as ErrCorrupt.
func Decode(blob []byte) ([]types.Student, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	for i, item := range raw {
		if item == nil {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrCorrupt, i)
		}
		for _, key := range []string{"id", "name", "nim", "address"} {
			if _, ok := item[key]; !ok {
				return nil, fmt.Errorf("%w: entry %d has no %q", ErrCorrupt, i, key)
			}
		}
	}

	students := make([]types.Student, 0, len(raw))
	if err := json.Unmarshal(blob, &students); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return students, nil
}
