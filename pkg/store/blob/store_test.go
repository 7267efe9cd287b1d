package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewFSStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "budget-allocation", []byte(`{"version":{"major":1}}`)))

	data, err := store.Get(ctx, "budget-allocation")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":{"major":1}}`, string(data))

	// Stored under <root>/<key>.json.
	_, err = os.Stat(filepath.Join(root, "budget-allocation.json"))
	assert.NoError(t, err)
}

func TestFSStore_PutCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "models")
	store := NewFSStore(root)

	require.NoError(t, store.Put(context.Background(), "state", []byte("{}")))

	_, err := os.Stat(filepath.Join(root, "state.json"))
	assert.NoError(t, err)
}

func TestFSStore_RejectsEmptyKey(t *testing.T) {
	store := NewFSStore(t.TempDir())
	assert.Error(t, store.Put(context.Background(), "", []byte("{}")))
}

func TestFSStore_GetMissingKey(t *testing.T) {
	store := NewFSStore(t.TempDir())
	_, err := store.Get(context.Background(), "absent")
	assert.Error(t, err)
}

func TestMemStore_CopiesData(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	payload := []byte("original")
	require.NoError(t, store.Put(ctx, "key", payload))
	payload[0] = 'X'

	data, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}
