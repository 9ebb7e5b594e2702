package notify

import (
	"encoding/json"
	"time"
)

// Recipient identifies the user a notification is addressed to. The zero
// value means "no recipient": such notifications receive no sequence number,
// are never replayed, and exist only as fire-and-forget records. Modelling
// the absent recipient as a variant instead of a nullable string keeps the
// never-replayable property structurally enforced.
type Recipient struct {
	UserID string
	Valid  bool
}

// To creates an addressed Recipient. An empty userID yields the unaddressed
// zero value.
func To(userID string) Recipient {
	return Recipient{UserID: userID, Valid: userID != ""}
}

// MarshalJSON encodes the recipient as its user id, or null when unaddressed.
func (r Recipient) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.UserID)
}

// UnmarshalJSON decodes a user id string or null.
func (r *Recipient) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Recipient{}
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*r = To(id)
	return nil
}

// Notification is the core domain model. The durable store assigns ID on
// creation; Seq is assigned exactly once at creation for addressed
// notifications (0 means unsequenced); Delivered transitions false to true
// exactly once, on acknowledgment.
type Notification struct {
	ID        string          `json:"id"`
	Recipient Recipient       `json:"to_user_id"`
	Payload   json.RawMessage `json:"payload,omitempty"` // opaque, never inspected by this package
	Seq       int64           `json:"seq"`
	Delivered bool            `json:"delivered"`
	CreatedAt time.Time       `json:"created_at"`
}

// Sequenced reports whether the notification carries a usable sequence
// number, i.e. it is addressed and participates in ordering and replay.
func (n Notification) Sequenced() bool {
	return n.Recipient.Valid && n.Seq > 0
}
