package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is a Storage implementation backed by PostgreSQL via pgx.
// The schema lives in the migrations directory; a partial unique index on
// (user_id, seq) makes duplicate sequence numbers impossible at the store
// level even if an allocator misbehaves.
type PostgresStorage struct {
	db *pgxpool.Pool
}

// NewPostgresStorage creates a Storage over an existing connection pool.
func NewPostgresStorage(db *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Save(ctx context.Context, n Notification) (Notification, error) {
	if n.ID == "" {
		return s.insert(ctx, n)
	}
	return s.update(ctx, n)
}

func (s *PostgresStorage) insert(ctx context.Context, n Notification) (Notification, error) {
	var userID *string
	if n.Recipient.Valid {
		userID = &n.Recipient.UserID
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, payload, seq, delivered, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, []byte(n.Payload), n.Seq, n.Delivered, n.CreatedAt,
	)

	if err := row.Scan(&n.ID); err != nil {
		return Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}

	return n, nil
}

// update persists the delivered flag, the only field that may change after
// creation.
func (s *PostgresStorage) update(ctx context.Context, n Notification) (Notification, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE notifications SET delivered = $2 WHERE id = $1`,
		n.ID, n.Delivered,
	)
	if err != nil {
		return Notification{}, fmt.Errorf("failed to update notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Notification{}, ErrNotificationNotFound
	}

	return n, nil
}

func (s *PostgresStorage) Find(ctx context.Context, id string) (*Notification, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, payload, seq, delivered, created_at
		FROM notifications
		WHERE id = $1`,
		id,
	)

	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	return n, nil
}

func (s *PostgresStorage) ListAfterSeq(ctx context.Context, userID string, seq int64) ([]Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, payload, seq, delivered, created_at
		FROM notifications
		WHERE user_id = $1 AND seq > $2
		ORDER BY seq ASC`,
		userID, seq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications after seq: %w", err)
	}

	return collectNotifications(rows)
}

func (s *PostgresStorage) ListUndelivered(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, payload, seq, delivered, created_at
		FROM notifications
		WHERE user_id = $1 AND NOT delivered
		ORDER BY seq ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list undelivered notifications: %w", err)
	}

	return collectNotifications(rows)
}

func scanNotification(row pgx.Row) (*Notification, error) {
	var (
		n       Notification
		userID  *string
		payload []byte
	)
	if err := row.Scan(&n.ID, &userID, &payload, &n.Seq, &n.Delivered, &n.CreatedAt); err != nil {
		return nil, err
	}
	if userID != nil {
		n.Recipient = To(*userID)
	}
	n.Payload = payload
	return &n, nil
}

func collectNotifications(rows pgx.Rows) ([]Notification, error) {
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notification rows: %w", err)
	}

	return notifications, nil
}
