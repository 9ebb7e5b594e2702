package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyq/pkg/notify"
)

func TestMemoryPendingIndex(t *testing.T) {
	t.Parallel()

	idx := notify.NewMemoryPendingIndex()
	ctx := context.Background()

	require.NoError(t, idx.Append(ctx, "user-1", "n-1"))
	require.NoError(t, idx.Append(ctx, "user-1", "n-2"))
	require.NoError(t, idx.Append(ctx, "user-2", "n-3"))

	ids, err := idx.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"n-1", "n-2"}, ids)

	require.NoError(t, idx.Remove(ctx, "user-1", "n-1"))

	ids, err = idx.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"n-2"}, ids)

	// Removing an id that is not present is a no-op.
	require.NoError(t, idx.Remove(ctx, "user-1", "ghost"))

	ids, err = idx.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"n-3"}, ids)
}
