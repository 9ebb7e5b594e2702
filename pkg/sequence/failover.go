package sequence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/notifyq/pkg/logger"
)

// Failover delegates to a primary allocator and falls back to a secondary
// when the primary fails. Fallback is never surfaced to the caller; it is
// logged instead, because a degraded sequence is still usable while a failed
// create is not.
//
// Note the degradation: once the primary is down, values come from the
// fallback's own counter space, so strict cross-instance ordering holds only
// as long as a single instance is running. See the package documentation.
type Failover struct {
	primary  Allocator
	fallback Allocator
	logger   *slog.Logger
}

// FailoverOption configures a Failover allocator.
type FailoverOption func(*Failover)

// WithFailoverLogger sets the logger used to report primary failures.
func WithFailoverLogger(log *slog.Logger) FailoverOption {
	return func(f *Failover) {
		f.logger = log
	}
}

// NewFailover wires a primary allocator with a fallback. A nil fallback
// defaults to a fresh Local allocator.
func NewFailover(primary Allocator, fallback Allocator, opts ...FailoverOption) *Failover {
	if fallback == nil {
		fallback = NewLocal()
	}

	f := &Failover{
		primary:  primary,
		fallback: fallback,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Failover) Next(ctx context.Context, recipientID string) (int64, error) {
	seq, err := f.primary.Next(ctx, recipientID)
	if err == nil {
		return seq, nil
	}

	// Invalid input fails on any backend; only infrastructure failures
	// justify the fallback.
	if errors.Is(err, ErrEmptyRecipient) {
		return 0, err
	}

	f.logger.LogAttrs(ctx, slog.LevelWarn, "Sequence allocator primary failed, using local fallback",
		logger.UserID(recipientID),
		logger.Error(err),
	)

	return f.fallback.Next(ctx, recipientID)
}
