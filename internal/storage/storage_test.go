package storage

import (
	"testing"

	"github.com/aanand-mishra/students-roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	gpa := 3.5
	in := []types.Student{
		{ID: 1, Name: "Andi", StudentID: "D121231038", Address: "Makassar", GPA: &gpa, Gender: types.GenderMale},
	}

	blob, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	blob, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))
}

func TestDecode_Corrupt(t *testing.T) {
	cases := map[string]string{
		"not json":      `{{{`,
		"not an array":  `{"id":1}`,
		"null entry":    `[null]`,
		"missing nim":   `[{"id":1,"name":"A","address":"B"}]`,
		"wrong id type": `[{"id":"x","name":"A","nim":"D121231038","address":"B"}]`,
		"array of ints": `[1,2,3]`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(blob))
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}
