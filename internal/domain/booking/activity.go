package booking

import (
	"time"

	"github.com/google/uuid"
)

// Activity log actions recorded by the workflow.
const (
	ActionStatusChange     = "status_change"
	ActionPaymentMarked    = "payment_marked"
	ActionPaymentUnmarked  = "payment_unmarked"
	ActionVoucherGenerated = "voucher_generated"
	ActionShareLinkIssued  = "share_link_issued"
)

// ActivityEntry is one append-only audit record. Entries are written on
// every status change and on significant edits, and never mutated.
type ActivityEntry struct {
	ID          int64
	BookingID   *int64
	UserID      *uuid.UUID
	Action      string
	Description string
	CreatedAt   time.Time
}

// NewStatusChangeEntry builds the canonical status-change record, e.g.
// "confirmed → quoted".
func NewStatusChangeEntry(bookingID int64, userID *uuid.UUID, from, to Status) ActivityEntry {
	return ActivityEntry{
		BookingID:   &bookingID,
		UserID:      userID,
		Action:      ActionStatusChange,
		Description: from.String() + " → " + to.String(),
	}
}
