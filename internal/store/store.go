// Package store is the Record Store: the single owner of the student
// roster, its ordering, and record identity.
//
// Every record gets an id from a counter that only moves forward, so ids
// are never reused while the process runs. Every mutation persists the
// whole roster through a storage.Storage. A mutex serializes all access,
// which lets HTTP handlers share one Store.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aanand-mishra/students-roster/internal/apperr"
	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/types"
)

// Store is the in-memory roster backed by a persistent blob.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	log     *slog.Logger

	records []types.Student
	nextID  int64
}

// New returns an empty Store. Call Load before serving requests.
func New(s storage.Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{storage: s, log: log, nextID: 1}
}

// Load replaces the in-memory roster with the persisted one.
//
// When nothing is persisted, or the blob is corrupt, the roster falls back
// to seed (which may be empty) and that fallback is saved. A corrupt blob
// is logged as a warning rather than returned. Other storage errors are
// returned unchanged.
func (s *Store) Load(seed []types.Student) error {
	return s.load(seed, true)
}

// Peek is Load without the fallback save: storage is only read. It suits
// runs that must leave storage untouched, such as a dry-run import.
func (s *Store) Peek(seed []types.Student) error {
	return s.load(seed, false)
}

func (s *Store) load(seed []types.Student, persist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.storage.Load()
	switch {
	case err == nil:
		s.replace(records)
		s.log.Info("roster loaded", slog.Int("records", len(records)))
		return nil
	case errors.Is(err, storage.ErrEmpty):
		s.log.Info("no roster saved, using seed data", slog.Int("records", len(seed)))
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Warn("saved roster is corrupt, resetting to seed data",
			slog.String("error", err.Error()),
			slog.Int("records", len(seed)))
	default:
		return fmt.Errorf("store.Load: %w", err)
	}

	s.replace(seed)
	if !persist {
		return nil
	}
	if err := s.storage.Save(s.records); err != nil {
		return fmt.Errorf("store.Load: save seed: %w", err)
	}
	return nil
}

// Init replaces the roster with seed and persists it. Ids keep counting
// from where they were, so records deleted by a reset are never reissued.
func (s *Store) Init(seed []types.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevID := s.records, s.nextID
	s.replace(seed)
	if err := s.storage.Save(s.records); err != nil {
		s.records, s.nextID = prev, prevID
		return fmt.Errorf("store.Init: %w", err)
	}
	return nil
}

// replace installs records and moves the id counter past the largest id.
// The counter never moves backwards.
func (s *Store) replace(records []types.Student) {
	s.records = make([]types.Student, 0, len(records))
	for _, r := range records {
		s.records = append(s.records, r.Clone())
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
}

func (s *Store) save() error {
	if err := s.storage.Save(s.records); err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	return nil
}

// All returns a copy of the roster in insertion order.
func (s *Store) All() []types.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Get returns the record with the given id or apperr.ErrNotFound.
func (s *Store) Get(id int64) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, apperr.ErrNotFound)
	}
	return s.records[i].Clone(), nil
}

// IsDuplicate reports whether a record other than excludeID (0 = none)
// already holds studentID, compared case-insensitively. A NIM match alone
// is a collision; the name is accepted for callers that pass the whole
// candidate but does not widen or narrow the match.
func (s *Store) IsDuplicate(name, studentID string, excludeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return isDuplicate(s.records, name, studentID, excludeID)
}

func isDuplicate(records []types.Student, _, studentID string, excludeID int64) bool {
	for _, r := range records {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if strings.EqualFold(r.StudentID, studentID) {
			return true
		}
	}
	return false
}

// Add assigns the next id to rec, appends it, and persists the roster.
// rec is expected to be normalized already.
func (s *Store) Add(rec types.Student) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if isDuplicate(s.records, rec.Name, rec.StudentID, 0) {
		return types.Student{}, fmt.Errorf("NIM %s is already registered: %w", rec.StudentID, apperr.ErrDuplicate)
	}

	rec = rec.Clone()
	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)

	if err := s.save(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return types.Student{}, err
	}
	return rec.Clone(), nil
}

// Update replaces the fields of record id with rec, keeping the id and the
// record's position.
func (s *Store) Update(id int64, rec types.Student) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, apperr.ErrNotFound)
	}
	if isDuplicate(s.records, rec.Name, rec.StudentID, id) {
		return types.Student{}, fmt.Errorf("NIM %s is already registered to another record: %w", rec.StudentID, apperr.ErrDuplicate)
	}

	prev := s.records[i]
	rec = rec.Clone()
	rec.ID = id
	s.records[i] = rec

	if err := s.save(); err != nil {
		s.records[i] = prev
		return types.Student{}, err
	}
	return rec.Clone(), nil
}

// Delete removes record id.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("no student found with id %d: %w", id, apperr.ErrNotFound)
	}

	prev := s.records
	s.records = append(cloneAll(s.records[:i]), s.records[i+1:]...)

	if err := s.save(); err != nil {
		s.records = prev
		return err
	}
	return nil
}

// DeleteMany removes every record whose id is in ids and returns how many
// were removed. Unknown ids are ignored. Nothing is saved when no record
// matched.
func (s *Store) DeleteMany(ids []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]types.Student, 0, len(s.records))
	for _, r := range s.records {
		if _, ok := drop[r.ID]; !ok {
			kept = append(kept, r)
		}
	}

	removed := len(s.records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.records
	s.records = kept
	if err := s.save(); err != nil {
		s.records = prev
		return 0, err
	}
	return removed, nil
}

// DeleteAll empties the roster and returns how many records were removed.
// The id counter keeps its value.
func (s *Store) DeleteAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.records
	s.records = []types.Student{}
	if err := s.save(); err != nil {
		s.records = prev
		return 0, err
	}
	return len(prev), nil
}

func (s *Store) indexOf(id int64) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(records []types.Student) []types.Student {
	out := make([]types.Student, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
