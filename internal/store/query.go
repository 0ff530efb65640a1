package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aanand-mishra/students-roster/internal/types"
)

// SortKey orders query results. The zero value keeps insertion order.
type SortKey string

const (
	SortNone        SortKey = ""
	SortNameAsc     SortKey = "name-asc"
	SortNameDesc    SortKey = "name-desc"
	SortNIMAsc      SortKey = "nim-asc"
	SortNIMDesc     SortKey = "nim-desc"
	SortCohortAsc   SortKey = "cohort-asc"
	SortCohortDesc  SortKey = "cohort-desc"
	SortProgramAsc  SortKey = "program-asc"
	SortProgramDesc SortKey = "program-desc"
)

// ParseSortKey validates s against the known keys.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortNone, SortNameAsc, SortNameDesc, SortNIMAsc, SortNIMDesc,
		SortCohortAsc, SortCohortDesc, SortProgramAsc, SortProgramDesc:
		return key, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// Query filters and orders the roster.
type Query struct {
	// Search matches, case-insensitively, as a substring of name, NIM,
	// program, cohort year, or address.
	Search string
	// Cohort keeps only records of that cohort year.
	Cohort string
	Sort   SortKey
}

// Query returns the records matching q. The roster itself is not
// reordered.
func (s *Store) Query(q Query) []types.Student {
	s.mu.Lock()
	out := make([]types.Student, 0, len(s.records))
	keyword := strings.ToLower(strings.TrimSpace(q.Search))
	cohort := strings.TrimSpace(q.Cohort)
	for _, r := range s.records {
		if cohort != "" && r.CohortYear != cohort {
			continue
		}
		if keyword != "" && !matches(r, keyword) {
			continue
		}
		out = append(out, r.Clone())
	}
	s.mu.Unlock()

	sortRecords(out, q.Sort)
	return out
}

// Cohorts returns the distinct cohort years in the roster, newest first.
func (s *Store) Cohorts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range s.records {
		if r.CohortYear == "" {
			continue
		}
		if _, ok := seen[r.CohortYear]; ok {
			continue
		}
		seen[r.CohortYear] = struct{}{}
		out = append(out, r.CohortYear)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

func matches(r types.Student, keyword string) bool {
	for _, field := range []string{r.Name, r.StudentID, r.Program, r.CohortYear, r.Address} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

func sortRecords(records []types.Student, key SortKey) {
	var field func(types.Student) string
	desc := strings.HasSuffix(string(key), "-desc")

	switch key {
	case SortNameAsc, SortNameDesc:
		field = func(r types.Student) string { return strings.ToLower(r.Name) }
	case SortNIMAsc, SortNIMDesc:
		field = func(r types.Student) string { return r.StudentID }
	case SortCohortAsc, SortCohortDesc:
		field = func(r types.Student) string { return r.CohortYear }
	case SortProgramAsc, SortProgramDesc:
		field = func(r types.Student) string { return strings.ToLower(r.Program) }
	default:
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := field(records[i]), field(records[j])
		if desc {
			return a > b
		}
		return a < b
	})
}
