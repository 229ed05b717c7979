package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownStatus   = errors.New("unknown booking status")
	ErrUnknownEvent    = errors.New("unknown workflow event")
	ErrZeroTotalAmount = errors.New("total amount must be positive")
)

// TransitionError reports a forbidden workflow transition with the current
// and attempted state so handlers can surface both.
type TransitionError struct {
	From  Status
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: event %q not allowed from status %q", e.Event, e.From)
}

type transition struct {
	from   []Status
	to     func(b *Booking) Status
	guard  func(b *Booking) error
	effect func(b *Booking, now time.Time)
}

func fixed(s Status) func(*Booking) Status {
	return func(*Booking) Status { return s }
}

// transitions is the authoritative workflow table. cancel is reachable
// from every non-cancelled status, completed included (refund case).
var transitions = map[Event]transition{
	EventConfirm: {
		from: []Status{StatusDraft, StatusPending},
		to:   fixed(StatusConfirmed),
		effect: func(b *Booking, now time.Time) {
			b.stamps.ConfirmedAt = &now
		},
	},
	EventCreateQuote: {
		from: []Status{StatusConfirmed},
		to:   fixed(StatusQuoted),
		guard: func(b *Booking) error {
			if !b.total.Amount().IsPositive() {
				return ErrZeroTotalAmount
			}
			return nil
		},
		effect: func(b *Booking, now time.Time) {
			b.stamps.QuotedAt = &now
		},
	},
	EventMarkPaid: {
		from: []Status{StatusQuoted, StatusConfirmed},
		to:   fixed(StatusPaid),
		effect: func(b *Booking, now time.Time) {
			prev := b.status
			b.statusBeforePaid = &prev
			if b.billing.InvoiceNumber == nil {
				inv := "INV-" + b.reference
				b.billing.InvoiceNumber = &inv
			}
			b.billing.IsPaid = true
			b.billing.InvoiceStatus = InvoiceStatusPaid
			b.billing.InvoicePaidDate = &now
			b.stamps.PaidAt = &now
		},
	},
	EventUnmarkPaid: {
		from: []Status{StatusPaid},
		to: func(b *Booking) Status {
			if b.statusBeforePaid != nil && b.statusBeforePaid.IsValid() {
				return *b.statusBeforePaid
			}
			return StatusQuoted
		},
		effect: func(b *Booking, _ time.Time) {
			b.billing.IsPaid = false
			b.billing.InvoiceStatus = InvoiceStatusUnpaid
			b.billing.InvoicePaidDate = nil
			b.statusBeforePaid = nil
		},
	},
	EventGenerateVoucher: {
		from: []Status{StatusPaid, StatusConfirmed, StatusQuoted},
		to:   fixed(StatusVouchered),
		effect: func(b *Booking, now time.Time) {
			b.stamps.VoucheredAt = &now
		},
	},
	EventComplete: {
		from: []Status{StatusVouchered},
		to:   fixed(StatusCompleted),
	},
	EventCancel: {
		from: []Status{
			StatusDraft, StatusPending, StatusConfirmed, StatusQuoted,
			StatusPaid, StatusVouchered, StatusCompleted,
		},
		to: fixed(StatusCancelled),
	},
}

// CanApply checks whether the event is allowed from the current status,
// guards included, without mutating the booking.
func (b *Booking) CanApply(ev Event) error {
	t, ok := transitions[ev]
	if !ok {
		return ErrUnknownEvent
	}
	if !statusIn(b.status, t.from) {
		return &TransitionError{From: b.status, Event: ev}
	}
	if t.guard != nil {
		return t.guard(b)
	}
	return nil
}

// ApplyEvent performs the transition in memory: status change plus the
// timestamp and billing side effects of the workflow table. Persistence
// and activity logging belong to the usecase layer.
func (b *Booking) ApplyEvent(ev Event, now time.Time) (from, to Status, err error) {
	if err := b.CanApply(ev); err != nil {
		return b.status, b.status, err
	}

	t := transitions[ev]
	from = b.status
	to = t.to(b)

	if t.effect != nil {
		t.effect(b, now)
	}
	b.status = to
	return from, to, nil
}

func statusIn(s Status, set []Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
