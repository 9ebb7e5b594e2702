package sequence_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyq/pkg/sequence"
)

// MockAllocator for testing Failover.
type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Next(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func TestFailover_Next(t *testing.T) {
	t.Parallel()

	t.Run("primary healthy", func(t *testing.T) {
		t.Parallel()

		primary := new(MockAllocator)
		primary.On("Next", mock.Anything, "user-1").Return(int64(42), nil)

		alloc := sequence.NewFailover(primary, sequence.NewLocal(),
			sequence.WithFailoverLogger(slog.New(slog.DiscardHandler)),
		)

		seq, err := alloc.Next(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(42), seq)
		primary.AssertExpectations(t)
	})

	t.Run("primary unreachable falls back to local", func(t *testing.T) {
		t.Parallel()

		primary := new(MockAllocator)
		primary.On("Next", mock.Anything, "user-1").
			Return(int64(0), errors.Join(sequence.ErrAllocatorUnavailable, errors.New("connection refused")))

		alloc := sequence.NewFailover(primary, sequence.NewLocal(),
			sequence.WithFailoverLogger(slog.New(slog.DiscardHandler)),
		)
		ctx := context.Background()

		// Two sequential allocations within one process still yield 1 then 2.
		seq, err := alloc.Next(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), seq)

		seq, err = alloc.Next(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), seq)
	})

	t.Run("nil fallback defaults to local", func(t *testing.T) {
		t.Parallel()

		primary := new(MockAllocator)
		primary.On("Next", mock.Anything, "user-1").Return(int64(0), errors.New("down"))

		alloc := sequence.NewFailover(primary, nil,
			sequence.WithFailoverLogger(slog.New(slog.DiscardHandler)),
		)

		seq, err := alloc.Next(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), seq)
	})

	t.Run("invalid input does not trigger fallback", func(t *testing.T) {
		t.Parallel()

		primary := new(MockAllocator)
		primary.On("Next", mock.Anything, "").Return(int64(0), sequence.ErrEmptyRecipient)

		fallback := new(MockAllocator)

		alloc := sequence.NewFailover(primary, fallback,
			sequence.WithFailoverLogger(slog.New(slog.DiscardHandler)),
		)

		_, err := alloc.Next(context.Background(), "")
		assert.ErrorIs(t, err, sequence.ErrEmptyRecipient)
		fallback.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})
}
