package rows

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	input := "\ufeffNama,NIM,Alamat\n" +
		"Andi Saputra,D121231038,Makassar\n" +
		"\n" +
		",,\n" +
		"Budi,D021231039\n"

	got, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Row 2", got[0].Label)
	assert.Equal(t, "Andi Saputra", got[0].Fields["Nama"])
	assert.Equal(t, "Makassar", got[0].Fields["Alamat"])

	assert.Equal(t, "Row 5", got[1].Label)
	assert.Equal(t, "", got[1].Fields["Alamat"], "short rows get empty trailing columns")
}

func TestDecodeCSV_HeaderOnlyAndEmpty(t *testing.T) {
	got, err := DecodeCSV(strings.NewReader("name,nim,address\n"))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = DecodeCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeJSON(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		got, err := DecodeJSON(strings.NewReader(`[{"name":"Andi","ipk":3.75,"notes":null},{"name":"Budi"}]`))
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Entry 1", got[0].Label)
		assert.Equal(t, json.Number("3.75"), got[0].Fields["ipk"])
		assert.Nil(t, got[0].Fields["notes"])
		assert.Equal(t, "Entry 2", got[1].Label)
	})

	t.Run("wrapped", func(t *testing.T) {
		got, err := DecodeJSON(strings.NewReader(`{"students":[{"name":"Citra"}]}`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Citra", got[0].Fields["name"])
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := DecodeJSON(strings.NewReader(`[{"name":`))
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := DecodeJSON(strings.NewReader("  "))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDecodeYAML(t *testing.T) {
	got, err := DecodeYAML(strings.NewReader(`
- nama: Andi Saputra
  nim: D121231038
  ipk: 3.5
- nama: Budi
  nim: D021231039
`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Andi Saputra", got[0].Fields["nama"])
	assert.Equal(t, 3.5, got[0].Fields["ipk"])
	assert.Equal(t, "Entry 2", got[1].Label)

	got, err = DecodeYAML(strings.NewReader("students:\n  - name: Citra\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = DecodeYAML(strings.NewReader("just a string"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": FormatCSV, ".JSON": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	f, err := FormatForFile("students.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
}

func TestDecode_Dispatch(t *testing.T) {
	got, err := Decode(FormatCSV, strings.NewReader("a\n1\n"))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Decode(Format("xml"), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "abc", String("abc"))
	assert.Equal(t, "3.75", String(json.Number("3.75")))
	assert.Equal(t, "3.5", String(3.5))
	assert.Equal(t, "2023", String(2023))
	assert.Equal(t, "2023", String(float64(2023)))
	assert.Equal(t, "true", String(true))
}
