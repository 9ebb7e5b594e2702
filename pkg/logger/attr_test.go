package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/notifyq/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
}

func TestUserID(t *testing.T) {
	t.Parallel()

	attr := logger.UserID("user-1")
	assert.Equal(t, "user_id", attr.Key)
	assert.Equal(t, "user-1", attr.Value.String())

	assert.Equal(t, slog.Attr{}, logger.UserID(""))
}

func TestNotificationID(t *testing.T) {
	t.Parallel()

	attr := logger.NotificationID("n-1")
	assert.Equal(t, "notification_id", attr.Key)
	assert.Equal(t, "n-1", attr.Value.String())

	assert.Equal(t, slog.Attr{}, logger.NotificationID(""))
}

func TestSeq(t *testing.T) {
	t.Parallel()

	attr := logger.Seq(42)
	assert.Equal(t, "seq", attr.Key)
	assert.Equal(t, int64(42), attr.Value.Int64())
}

func TestErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))

	attr := logger.Errors(errors.New("a"), nil, errors.New("b"))
	assert.Equal(t, "errors", attr.Key)
	assert.Len(t, attr.Value.Group(), 2)
}
