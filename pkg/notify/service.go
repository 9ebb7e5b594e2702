package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifyq/pkg/logger"
	"github.com/dmitrymomot/notifyq/pkg/sequence"
)

// DefaultDestination is the client-side queue pushed notifications are
// addressed to unless overridden with WithDestination.
const DefaultDestination = "/queue/notifications"

// Service orchestrates notification creation, presence-gated dispatch,
// replay, and acknowledgment. The durable Storage is authoritative for every
// decision; the PendingIndex and the push Channel are best-effort and their
// failures never abort the primary flow.
type Service struct {
	storage     Storage
	alloc       sequence.Allocator
	channel     Channel
	presence    Presence
	pending     PendingIndex
	destination string
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPendingIndex enables the best-effort fast index. Without it, pending
// lookups return empty and replay relies on the durable store alone (which it
// does anyway).
func WithPendingIndex(idx PendingIndex) Option {
	return func(s *Service) {
		s.pending = idx
	}
}

// WithDestination overrides the client-side destination pushes are addressed to.
func WithDestination(dest string) Option {
	return func(s *Service) {
		s.destination = dest
	}
}

// WithLogger sets the logger for the Service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// NewService creates a notification service. storage and alloc are required;
// a nil channel defaults to NoopChannel and a nil presence treats every user
// as offline, leaving replay as the delivery path.
func NewService(storage Storage, alloc sequence.Allocator, channel Channel, presence Presence, opts ...Option) *Service {
	if channel == nil {
		channel = NoopChannel{}
	}
	if presence == nil {
		presence = offlinePresence{}
	}

	s := &Service{
		storage:     storage,
		alloc:       alloc,
		channel:     channel,
		presence:    presence,
		destination: DefaultDestination,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create allocates a sequence number (for addressed notifications), persists
// the record undelivered, and appends it to the pending index. The append is
// fire-and-forget: an index outage degrades lookups, never creation. The
// record is persisted and indexed regardless of the recipient's presence so
// that a push lost after dispatch is always recoverable by replay.
func (s *Service) Create(ctx context.Context, to Recipient, payload json.RawMessage) (Notification, error) {
	n := Notification{
		Recipient: to,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	// Sequence before persist: the stored row must already carry its final
	// seq so concurrent replays observe a consistent ordering.
	if to.Valid {
		seq, err := s.alloc.Next(ctx, to.UserID)
		if err != nil {
			return Notification{}, fmt.Errorf("failed to allocate sequence: %w", err)
		}
		n.Seq = seq
	}

	saved, err := s.storage.Save(ctx, n)
	if err != nil {
		// No record exists; the allocated seq becomes a tolerated gap.
		return Notification{}, fmt.Errorf("failed to store notification: %w", err)
	}

	if to.Valid && s.pending != nil {
		if err := s.pending.Append(ctx, to.UserID, saved.ID); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to append to pending index, durable store remains authoritative",
				logger.NotificationID(saved.ID),
				logger.UserID(to.UserID),
				logger.Error(err),
			)
		}
	}

	return saved, nil
}

// DispatchIfOnline pushes the notification to the user if the presence
// oracle reports them reachable, and does nothing otherwise. The push does
// not mark the notification delivered; only an acknowledgment does. Presence
// and push failures are logged and swallowed because the record already sits
// in durable storage where replay will find it.
func (s *Service) DispatchIfOnline(ctx context.Context, userID string, n Notification) error {
	online, err := s.presence.IsOnline(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Presence lookup failed, leaving notification for replay",
			logger.NotificationID(n.ID),
			logger.UserID(userID),
			logger.Error(err),
		)
		return nil
	}
	if !online {
		return nil
	}

	s.push(ctx, userID, n)
	return nil
}

// Send is a convenience combining Create and DispatchIfOnline for addressed
// notifications. Unaddressed notifications are only persisted.
func (s *Service) Send(ctx context.Context, to Recipient, payload json.RawMessage) (Notification, error) {
	n, err := s.Create(ctx, to, payload)
	if err != nil {
		return Notification{}, err
	}

	if to.Valid {
		if err := s.DispatchIfOnline(ctx, to.UserID, n); err != nil {
			return Notification{}, err
		}
	}

	return n, nil
}

// ReplayMissed re-pushes every notification for the user with Seq greater
// than lastSeenSeq that has not been acknowledged yet, in ascending sequence
// order. Used when a reconnecting client reports the last sequence it
// processed. Reads go to the durable store only.
func (s *Service) ReplayMissed(ctx context.Context, userID string, lastSeenSeq int64) error {
	missed, err := s.storage.ListAfterSeq(ctx, userID, lastSeenSeq)
	if err != nil {
		return fmt.Errorf("failed to list missed notifications: %w", err)
	}

	for _, n := range missed {
		// A row can become delivered between fetch and push when an ack
		// races the replay; re-check per item.
		if n.Delivered {
			continue
		}
		s.push(ctx, userID, n)
	}

	return nil
}

// ReplayPendingUndelivered re-pushes every undelivered notification for the
// user in ascending sequence order. The simpler recovery path for clients
// without a reliable sequence watermark. Reads go to the durable store only.
func (s *Service) ReplayPendingUndelivered(ctx context.Context, userID string) error {
	pending, err := s.storage.ListUndelivered(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list undelivered notifications: %w", err)
	}

	for _, n := range pending {
		s.push(ctx, userID, n)
	}

	return nil
}

// Acknowledge marks the notification delivered and retires it from the
// pending index. Unknown ids are treated as already resolved, and repeated
// acknowledgments are no-ops, so the operation is idempotent. A failure to
// persist the flag leaves the notification undelivered and therefore
// re-deliverable: that is the at-least-once recovery path.
func (s *Service) Acknowledge(ctx context.Context, notificationID string) error {
	n, err := s.storage.Find(ctx, notificationID)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			// Stale or duplicate ack; nothing left to resolve.
			return nil
		}
		return fmt.Errorf("failed to look up notification: %w", err)
	}

	if !n.Delivered {
		n.Delivered = true
		if _, err := s.storage.Save(ctx, *n); err != nil {
			return fmt.Errorf("failed to mark notification delivered: %w", err)
		}
	}

	if n.Recipient.Valid && s.pending != nil {
		if err := s.pending.Remove(ctx, n.Recipient.UserID, n.ID); err != nil {
			// Stale entries are harmless: replay re-checks the authoritative
			// Delivered flag.
			s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to remove from pending index",
				logger.NotificationID(n.ID),
				logger.UserID(n.Recipient.UserID),
				logger.Error(err),
			)
		}
	}

	return nil
}

// PendingIDs returns the raw contents of the fast index for the user, or an
// empty slice when no index is configured or the cache is unavailable. It is
// a hint for tooling and debugging, not a correctness-bearing API.
func (s *Service) PendingIDs(ctx context.Context, userID string) ([]string, error) {
	if s.pending == nil {
		return []string{}, nil
	}

	ids, err := s.pending.List(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to read pending index",
			logger.UserID(userID),
			logger.Error(err),
		)
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// push attempts delivery over the channel. A failed push is simply "not
// delivered": it is logged and left for replay to recover.
func (s *Service) push(ctx context.Context, userID string, n Notification) {
	if err := s.channel.SendToUser(ctx, userID, s.destination, n); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to push notification, will be recovered by replay",
			logger.NotificationID(n.ID),
			logger.UserID(userID),
			logger.Seq(n.Seq),
			logger.Destination(s.destination),
			logger.Error(err),
		)
	}
}

// offlinePresence is the default Presence: every user is offline, so nothing
// is ever pushed at dispatch time and delivery happens exclusively via replay.
type offlinePresence struct{}

func (offlinePresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	return false, nil
}
