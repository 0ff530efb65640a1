package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-roster/internal/config"
	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(&config.Config{
		StoragePath: filepath.Join(t.TempDir(), "roster.db"),
		StorageKey:  "crud_mahasiswa",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoad_EmptyDatabase(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Load()
	assert.ErrorIs(t, err, storage.ErrEmpty)
}

func TestSaveLoad_RoundTripAndOverwrite(t *testing.T) {
	db := newTestDB(t)

	first := []types.Student{{ID: 1, Name: "Andi", StudentID: "D121231038", Address: "Makassar"}}
	require.NoError(t, db.Save(first))

	got, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := append(first, types.Student{ID: 2, Name: "Budi", StudentID: "D021231039", Address: "Jakarta"})
	require.NoError(t, db.Save(second))

	got, err = db.Load()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoad_CorruptBlob(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Raw(`{"not":"a list"}`))

	_, err := db.Load()
	assert.ErrorIs(t, err, storage.ErrCorrupt)
}

func TestKeysAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")

	a, err := Open(path, "a")
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(path, "b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save([]types.Student{{ID: 1, Name: "A", StudentID: "D121231038", Address: "X"}}))

	_, err = b.Load()
	assert.ErrorIs(t, err, storage.ErrEmpty)
}

func TestOpen_RequiresKey(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "x.db"), "")
	assert.Error(t, err)
}
