package usecase

import (
	"context"
	"time"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/domain/customer"
)

// BookingRepository is the write-side port over the bookings table.
type BookingRepository interface {
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	FindByReference(ctx context.Context, reference string) (*booking.Booking, error)
	UpdateWorkflow(ctx context.Context, b *booking.Booking, expectedStatus booking.Status, expectedUpdatedAt time.Time) (time.Time, error)
	SetShareToken(ctx context.Context, id int64, token string) error
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
}

type ActivityRepository interface {
	Append(ctx context.Context, entry booking.ActivityEntry) error
	ListByBooking(ctx context.Context, bookingID int64, limit int32) ([]booking.ActivityEntry, error)
}

// SequenceRepository allocates human-facing document numbers.
type SequenceRepository interface {
	NextQuoteNumber(ctx context.Context) (string, error)
}
