package kritik

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buehnenwerk/udo-story/internal/db/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "database.sqlite"))
	require.NoError(t, err, "failed to open test store")

	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestAddValidation(t *testing.T) {
	st := newTestStore(t)

	require.ErrorIs(t, Add(nil, Fields{Stadt: "Wien", Text: "Grandios."}), ErrStoreNil)
	require.ErrorIs(t, Add(st, Fields{Text: "Grandios."}), ErrFieldMissing)
	require.ErrorIs(t, Add(st, Fields{Stadt: "Wien"}), ErrFieldMissing)

	require.NoError(t, Add(st, Fields{
		Stadt:  "Wien",
		Text:   "Ein unvergesslicher Abend in der Stadthalle.",
		Quelle: "Kurier",
		Datum:  "2026-03-14",
	}))

	count, err := Count(st)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAllNewestFirst(t *testing.T) {
	st := newTestStore(t)

	for _, stadt := range []string{"Wien", "Graz", "Linz"} {
		require.NoError(t, Add(st, Fields{Stadt: stadt, Text: "Begeistertes Publikum."}))
	}

	kritiken, err := All(st)
	require.NoError(t, err)
	require.Len(t, kritiken, 3)

	// newest first; identical timestamps fall back to id descending
	assert.Equal(t, "Linz", kritiken[0].Stadt)
	assert.Equal(t, "Graz", kritiken[1].Stadt)
	assert.Equal(t, "Wien", kritiken[2].Stadt)
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, Add(st, Fields{Stadt: "Wien", Text: "Grandios."}))

	kritiken, err := All(st)
	require.NoError(t, err)
	require.Len(t, kritiken, 1)

	require.NoError(t, Delete(st, kritiken[0].ID))

	kritiken, err = All(st)
	require.NoError(t, err)
	assert.Empty(t, kritiken)

	// deleting again is a no-op, not an error
	require.NoError(t, Delete(st, 9999))
}
