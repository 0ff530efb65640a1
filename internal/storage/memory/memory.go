// Package memory is an in-process storage.Storage. It keeps the encoded
// blob rather than the slice so loads go through the same decoding (and
// corruption detection) as the SQLite backend.
package memory

import (
	"fmt"
	"sync"

	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/types"
)

// Memory holds at most one roster blob.
type Memory struct {
	mu    sync.Mutex
	blob  []byte
	saves int
}

// New returns an empty store; Load reports storage.ErrEmpty until the
// first Save.
func New() *Memory {
	return &Memory{}
}

// Load decodes the saved blob.
func (m *Memory) Load() ([]types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blob == nil {
		return nil, storage.ErrEmpty
	}
	students, err := storage.Decode(m.blob)
	if err != nil {
		return nil, fmt.Errorf("memory.Load: %w", err)
	}
	return students, nil
}

// Save encodes and keeps students.
func (m *Memory) Save(students []types.Student) error {
	blob, err := storage.Encode(students)
	if err != nil {
		return fmt.Errorf("memory.Save: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = blob
	m.saves++
	return nil
}

// SetRaw replaces the blob verbatim.
func (m *Memory) SetRaw(blob string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = []byte(blob)
}

// Saves counts successful Save calls.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
