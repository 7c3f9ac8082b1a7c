package gmail

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)

	seen, err := store.Seen("msg-1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.MarkExported("msg-1", "SPAM"))

	seen, err = store.Seen("msg-1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = store.Seen("msg-2")
	require.NoError(t, err)
	assert.False(t, seen)
}
