package store

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/students-roster/internal/types"
)

// Batch is a write session over the roster opened by Store.Batch. It sees
// the roster including everything appended earlier in the same batch.
type Batch struct {
	s        *Store
	appended int
}

// IsDuplicate is Store.IsDuplicate inside the batch.
func (b *Batch) IsDuplicate(name, studentID string) bool {
	return isDuplicate(b.s.records, name, studentID, 0)
}

// Append assigns the next id to rec and appends it without saving.
func (b *Batch) Append(rec types.Student) types.Student {
	rec = rec.Clone()
	rec.ID = b.s.nextID
	b.s.nextID++
	b.s.records = append(b.s.records, rec)
	b.appended++
	return rec.Clone()
}

// Appended returns the number of records appended so far.
func (b *Batch) Appended() int { return b.appended }

// Batch runs fn with exclusive access to the roster. Records appended by
// fn are persisted with a single save once fn returns, and only if at
// least one was appended. If fn or the save fails, the appended records are
// discarded. Ids handed out to discarded records stay consumed. Batch
// returns the number of records committed.
func (s *Store) Batch(fn func(b *Batch) error) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := len(s.records)
	b := &Batch{s: s}

	if err := fn(b); err != nil {
		s.records = s.records[:start]
		return 0, fmt.Errorf("store.Batch: %w", err)
	}

	if b.appended == 0 {
		return 0, nil
	}

	if err := s.save(); err != nil {
		s.records = s.records[:start]
		return 0, err
	}

	s.log.Info("batch committed", slog.Int("appended", b.appended), slog.Int("records", len(s.records)))
	return b.appended, nil
}
