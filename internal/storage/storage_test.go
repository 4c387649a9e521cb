package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	_, err := m.Load("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save("k", []byte(`[1,2]`)))
	got, err := m.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)

	require.NoError(t, m.Delete("k"))
	_, err = m.Load("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCopiesData(t *testing.T) {
	m := NewMemory()
	in := []byte(`abc`)
	require.NoError(t, m.Save("k", in))
	in[0] = 'x'

	got, err := m.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`abc`), got)

	got[0] = 'y'
	again, err := m.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`abc`), again)
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Save("cart:s1", []byte(`[{"productId":"p1"}]`)))
	require.NoError(t, f.Save("wishlist:s1", []byte(`[]`)))

	reopened, err := NewFile(path)
	require.NoError(t, err)

	got, err := reopened.Load("cart:s1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1"}]`, string(got))

	require.NoError(t, reopened.Delete("cart:s1"))
	_, err = reopened.Load("cart:s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileMissingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	f, err := NewFile(path)
	require.NoError(t, err)

	_, err = f.Load("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileCorruptIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{garbage"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, err = f.Load("anything")
	assert.ErrorIs(t, err, ErrNotFound)

	// The store is still writable after recovering from a corrupt file.
	require.NoError(t, f.Save("k", []byte(`1`)))
	got, err := f.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`1`), got)
}
