package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	snap := Snapshot{Accounts: testRecords(3)}
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Accounts, loaded.Accounts)
	assert.Empty(t, loaded.Usage)
}

func TestLoadSnapshotErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
		_, err := LoadSnapshot(path)
		assert.Error(t, err)
	})

	t.Run("empty accounts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"accounts": []}`), 0644))
		_, err := LoadSnapshot(path)
		assert.Error(t, err)
	})
}
