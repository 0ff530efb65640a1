package store

import (
	"testing"

	"github.com/aanand-mishra/students-roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []types.Student) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestQuery_Search(t *testing.T) {
	s, _ := newSeeded(t)

	assert.Equal(t, []string{"Andi Saputra", "Intan Permata"}, names(s.Query(Query{Search: "makassar"})))
	assert.Equal(t, []string{"Andi Saputra"}, names(s.Query(Query{Search: "d1212"})))
	assert.Equal(t, []string{"Hariyanto"}, names(s.Query(Query{Search: "GEOLOGI"})))
	assert.Len(t, s.Query(Query{Search: "2023"}), 4)
	assert.Empty(t, s.Query(Query{Search: "nobody"}))
	assert.Len(t, s.Query(Query{}), 10)
}

func TestQuery_CohortFilter(t *testing.T) {
	s, _ := newSeeded(t)

	got := s.Query(Query{Cohort: "2022", Search: "a"})
	for _, r := range got {
		assert.Equal(t, "2022", r.CohortYear)
	}
	assert.Len(t, s.Query(Query{Cohort: "2022"}), 4)
	assert.Empty(t, s.Query(Query{Cohort: "1999"}))
}

func TestQuery_Sort(t *testing.T) {
	s, _ := newSeeded(t)

	byNameDesc := s.Query(Query{Sort: SortNameDesc})
	assert.Equal(t, "Joko Susilo", byNameDesc[0].Name)

	byCohort := s.Query(Query{Sort: SortCohortAsc})
	assert.Equal(t, "2020", byCohort[0].CohortYear)
	assert.Equal(t, "2023", byCohort[len(byCohort)-1].CohortYear)

	byNIM := s.Query(Query{Sort: SortNIMAsc})
	assert.Equal(t, "D011231041", byNIM[0].StudentID)

	byProgram := s.Query(Query{Sort: SortProgramAsc})
	assert.Equal(t, "Arsitektur", byProgram[0].Program)

	assert.Equal(t, int64(1), s.All()[0].ID, "query does not reorder the roster")
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey(" Name-Desc ")
	require.NoError(t, err)
	assert.Equal(t, SortNameDesc, key)

	key, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, key)

	_, err = ParseSortKey("age-asc")
	assert.Error(t, err)
}

func TestCohorts_NewestFirst(t *testing.T) {
	s, _ := newSeeded(t)
	assert.Equal(t, []string{"2023", "2022", "2021", "2020"}, s.Cohorts())
}
