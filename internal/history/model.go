package history

import (
	"encoding/json"
	"time"
)

// Audit trail actions. The trail is append-only.
const (
	ActionBookingCreated   = "booking_created"
	ActionBookingConfirmed = "booking_confirmed"
	ActionBookingPending   = "booking_pending"
	ActionBookingCancelled = "booking_cancelled"
	ActionWhatsAppOpened   = "whatsapp_opened"
	ActionNoteAdded        = "note_added"
)

// ValidAction reports whether a is a known audit action.
func ValidAction(a string) bool {
	switch a {
	case ActionBookingCreated, ActionBookingConfirmed, ActionBookingPending,
		ActionBookingCancelled, ActionWhatsAppOpened, ActionNoteAdded:
		return true
	}
	return false
}

type Event struct {
	ID        string          `db:"id" json:"id"`
	BookingID string          `db:"booking_id" json:"booking_id"`
	Action    string          `db:"action" json:"action"`
	Actor     string          `db:"actor" json:"actor"`
	Meta      json.RawMessage `db:"meta" json:"meta"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// ListFilter narrows an event listing. Empty fields match everything.
type ListFilter struct {
	From   string
	To     string
	Action string
	Actor  string
}
