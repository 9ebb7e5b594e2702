package notify_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyq/pkg/notify"
)

func TestRecipient(t *testing.T) {
	t.Parallel()

	t.Run("To creates addressed recipient", func(t *testing.T) {
		t.Parallel()

		r := notify.To("user-1")
		assert.True(t, r.Valid)
		assert.Equal(t, "user-1", r.UserID)
	})

	t.Run("empty user id is unaddressed", func(t *testing.T) {
		t.Parallel()

		r := notify.To("")
		assert.False(t, r.Valid)
	})

	t.Run("zero value is unaddressed", func(t *testing.T) {
		t.Parallel()

		var r notify.Recipient
		assert.False(t, r.Valid)
	})
}

func TestRecipientJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		recipient notify.Recipient
		wantJSON  string
	}{
		{
			name:      "addressed",
			recipient: notify.To("user-1"),
			wantJSON:  `"user-1"`,
		},
		{
			name:      "unaddressed",
			recipient: notify.Recipient{},
			wantJSON:  `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.recipient)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(data))

			var got notify.Recipient
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.recipient, got)
		})
	}
}

func TestNotificationSequenced(t *testing.T) {
	t.Parallel()

	addressed := notify.Notification{
		ID:        "n-1",
		Recipient: notify.To("user-1"),
		Seq:       3,
		CreatedAt: time.Now(),
	}
	assert.True(t, addressed.Sequenced())

	unaddressed := notify.Notification{ID: "n-2", CreatedAt: time.Now()}
	assert.False(t, unaddressed.Sequenced())
}
