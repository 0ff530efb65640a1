package nim

import (
	"strings"
	"testing"

	"github.com/aanand-mishra/students-roster/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantID    string
		wantErr   string
	}{
		{name: "valid informatics", input: "D121231038", wantValid: true, wantID: "D121231038"},
		{name: "lowercase prefix is uppercased", input: "d121231038", wantValid: true, wantID: "D121231038"},
		{name: "empty", input: "", wantErr: "must not be empty"},
		{name: "wrong prefix", input: "X121231038", wantErr: "faculty prefix"},
		{name: "wrong prefix beats wrong length", input: "X12", wantErr: "faculty prefix"},
		{name: "too short", input: "D12123103", wantErr: "exactly 10 characters"},
		{name: "too long", input: "D1212310388", wantErr: "exactly 10 characters"},
		{name: "unknown department", input: "D999231038", wantErr: "'999'"},
		{name: "year code not digits", input: "D121AB1038", wantErr: "year code 'AB'"},
		{name: "sequence not digits", input: "D1212310X8", wantErr: "sequence number '10X8'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.input)
			assert.Equal(t, tt.wantValid, res.Valid)

			if tt.wantValid {
				assert.NoError(t, res.Err)
				assert.Equal(t, tt.wantID, res.NormalizedID)
				return
			}

			require.Error(t, res.Err)
			assert.True(t, apperr.IsKind(res.Err, apperr.KindFormat))
			assert.Contains(t, res.Reason(), tt.wantErr)
			assert.Empty(t, res.NormalizedID)
		})
	}
}

func TestValidate_DecodesInformatics(t *testing.T) {
	res := Validate("D121231038")
	require.True(t, res.Valid)

	assert.Equal(t, "Teknik Informatika", res.Info.Department)
	assert.Equal(t, "121", res.Info.DepartmentCode)
	assert.Equal(t, "23", res.Info.YearCode)
	assert.Equal(t, "1038", res.Info.Sequence)
	assert.Equal(t, FacultyName, res.Info.Faculty)

	assert.Equal(t, "Teknik Informatika", DecodeDepartment("D121231038"))
	assert.Equal(t, "2023", DecodeCohortYear("D121231038"))
}

func TestValidate_PrefixErrorRegardlessOfLength(t *testing.T) {
	for _, input := range []string{"A", "x1", "E121231038", "Z12123103899999", "1121231038", " D121231038"} {
		res := Validate(input)
		assert.False(t, res.Valid, input)
		assert.Contains(t, res.Reason(), "faculty prefix", input)
	}
}

func TestValidate_EveryDepartmentCode(t *testing.T) {
	for _, dept := range Departments() {
		id := "d" + dept.Code + "230001"
		res := Validate(id)
		require.True(t, res.Valid, id)
		assert.Equal(t, strings.ToUpper(id), res.NormalizedID)
		assert.Equal(t, dept.Name, res.Info.Department)
	}
}

func TestDecodeHelpers_ReturnNAForInvalidInput(t *testing.T) {
	for _, input := range []string{"", "X121231038", "D999231038", "D12123", "D1212310X8"} {
		assert.Equal(t, NotAvailable, DecodeDepartment(input), input)
		assert.Equal(t, NotAvailable, DecodeCohortYear(input), input)
	}
}

func TestCohortYear_Pivot(t *testing.T) {
	c := New(DefaultPivot)

	assert.Equal(t, "2000", c.CohortYear("00"))
	assert.Equal(t, "2055", c.CohortYear("55"))
	assert.Equal(t, "1956", c.CohortYear("56"))
	assert.Equal(t, "1999", c.CohortYear("99"))
	assert.Equal(t, NotAvailable, c.CohortYear("5"))
	assert.Equal(t, NotAvailable, c.CohortYear("+1"))

	assert.Equal(t, "1970", DecodeCohortYear("D121701038"))
	assert.Equal(t, "2020", DecodeCohortYear("D621201047"))
}

func TestNew_CustomPivot(t *testing.T) {
	c := New(30)
	assert.Equal(t, 30, c.Pivot())
	assert.Equal(t, "1935", c.DecodeCohortYear("D121351038"))
	assert.Equal(t, "2029", c.DecodeCohortYear("D121291038"))

	assert.Equal(t, DefaultPivot, New(-1).Pivot())
	assert.Equal(t, DefaultPivot, New(101).Pivot())
}

func TestDescribe(t *testing.T) {
	c := New(DefaultPivot)
	assert.Equal(t, "Teknik Informatika - Cohort 2023", c.Describe(c.Validate("D121231038")))
	assert.Contains(t, c.Describe(c.Validate("X")), "faculty prefix")
}

func TestDepartments_SortedAndLookup(t *testing.T) {
	depts := Departments()
	require.NotEmpty(t, depts)
	for i := 1; i < len(depts); i++ {
		assert.Less(t, depts[i-1].Code, depts[i].Code)
	}

	name, ok := LookupDepartment("011")
	assert.True(t, ok)
	assert.Equal(t, "Teknik Sipil", name)

	_, ok = LookupDepartment("999")
	assert.False(t, ok)
}
