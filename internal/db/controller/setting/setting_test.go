package setting

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buehnenwerk/udo-story/internal/db/store"
)

// newTestStore creates a store backed by a temporary snapshot file.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "database.sqlite"))
	require.NoError(t, err, "failed to open test store")

	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestGet(t *testing.T) {
	st := newTestStore(t)

	testCases := []struct {
		name          string
		store         *store.Store
		key           string
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil store",
			store:         nil,
			key:           "site_title",
			expectedError: ErrStoreNil,
		},
		{
			name:          "empty key",
			store:         st,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			store:         st,
			key:           "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:          "seeded default",
			store:         st,
			key:           "site_title",
			expectedValue: "Die Udo Jürgens Story",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := Get(tc.store, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestAll(t *testing.T) {
	st := newTestStore(t)

	settings, err := All(st)
	require.NoError(t, err)

	// the seeded default key space, as a key/value map
	assert.Equal(t, "Die Udo Jürgens Story", settings["site_title"])
	assert.Equal(t, "Alex Parker", settings["artist_name"])
	assert.Contains(t, settings, "hero_image")
	assert.Contains(t, settings, "meta_description")
}

func TestSet(t *testing.T) {
	st := newTestStore(t)

	require.ErrorIs(t, Set(nil, "k", "v"), ErrStoreNil)
	require.ErrorIs(t, Set(st, "", "v"), ErrSettingKeyEmpty)

	// insert-or-replace on a seeded key
	require.NoError(t, Set(st, "site_title", "Neuer Titel"))

	value, err := Get(st, "site_title")
	require.NoError(t, err)
	assert.Equal(t, "Neuer Titel", value)

	// unknown keys are accepted, not rejected
	require.NoError(t, Set(st, "custom_key", "custom"))

	value, err = Get(st, "custom_key")
	require.NoError(t, err)
	assert.Equal(t, "custom", value)
}

func TestSetIsIdempotent(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, Set(st, "site_subtitle", "Einmal"))

	before, err := All(st)
	require.NoError(t, err)

	// applying the same write again yields the same observable state
	require.NoError(t, Set(st, "site_subtitle", "Einmal"))

	after, err := All(st)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
