package validation

import (
	"testing"

	"github.com/aanand-mishra/students-roster/internal/apperr"
	"github.com/aanand-mishra/students-roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct(t *testing.T) {
	v := New(nil)
	high := 4.2

	tests := []struct {
		name       string
		student    types.Student
		wantFields map[string]string
	}{
		{
			name:    "valid student",
			student: types.Student{Name: "Andi", StudentID: "D121231038", Address: "Makassar"},
		},
		{
			name:    "missing required fields",
			student: types.Student{},
			wantFields: map[string]string{
				"name":    "name is required",
				"nim":     "nim is required",
				"address": "address is required",
			},
		},
		{
			name:    "nim reason comes from the codec",
			student: types.Student{Name: "Andi", StudentID: "X121231038", Address: "Makassar"},
			wantFields: map[string]string{
				"nim": "NIM must start with the faculty prefix 'D' (upper or lower case)",
			},
		},
		{
			name:    "bad email and gpa",
			student: types.Student{Name: "Andi", StudentID: "D121231038", Address: "Makassar", Email: "nope", GPA: &high},
			wantFields: map[string]string{
				"email": "email must be a valid email address",
				"gpa":   "gpa must be at most 4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.student)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var list apperr.List
			require.ErrorAs(t, err, &list)
			assert.Equal(t, tt.wantFields, list.Fields())
		})
	}
}

func TestStruct_Kinds(t *testing.T) {
	err := New(nil).Struct(types.Student{Name: "A", StudentID: "D999231038", Address: "B"})
	assert.True(t, apperr.IsKind(err, apperr.KindFormat))

	err = New(nil).Struct(types.Student{StudentID: "D121231038", Address: "B"})
	assert.True(t, apperr.IsKind(err, apperr.KindRequired))
}
