//go:build unit || e2e

package builder

import (
	"time"

	"tourdesk/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ID           int64
	Reference    string
	CustomerID   int64
	PartyName    *string
	GuestList    []string
	Schedule     booking.Schedule
	Adults       int
	Children     int
	Infants      int
	TotalAmount  decimal.Decimal
	Currency     string
	Products     []booking.Product
	Status       booking.Status
	StatusBefore *booking.Status
	Stamps       booking.WorkflowStamps
	Billing      booking.Billing
	Presentation booking.Presentation
	ShareToken   *string
	CreatedBy    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	departure := time.Date(2025, 4, 20, 8, 30, 0, 0, time.UTC)
	party := "Somchai Family"
	createdBy := uuid.New()

	return &BookingBuilder{
		ID:         401,
		Reference:  "TD-2025-0401",
		CustomerID: 77,
		PartyName:  &party,
		GuestList:  []string{"Somchai J.", "Suda J."},
		Schedule: booking.Schedule{
			ArrivalDate:   timePtr(time.Date(2025, 4, 18, 14, 0, 0, 0, time.UTC)),
			DepartureDate: &departure,
			TravelStart:   timePtr(time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC)),
			TravelEnd:     timePtr(time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)),
		},
		Adults:      2,
		Children:    0,
		Infants:     0,
		TotalAmount: decimal.NewFromInt(12500),
		Currency:    "THB",
		Products: []booking.Product{
			{
				Name:      "Phi Phi Island Day Tour",
				Quantity:  decimal.NewFromInt(2),
				UnitPrice: decimal.NewFromInt(6250),
				Amount:    decimal.NewFromInt(12500),
			},
		},
		Status:    booking.StatusConfirmed,
		CreatedBy: &createdBy,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithTotal(amount decimal.Decimal) *BookingBuilder {
	b.TotalAmount = amount
	return b
}

func (b *BookingBuilder) WithQuoteNumber(number string) *BookingBuilder {
	b.Billing.QuoteNumber = &number
	return b
}

func (b *BookingBuilder) WithGuestList(guests []string) *BookingBuilder {
	b.GuestList = guests
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	pax, err := booking.NewPaxCounts(b.Adults, b.Children, b.Infants, 0)
	if err != nil {
		return nil, err
	}
	total, err := booking.NewMoney(b.TotalAmount, b.Currency)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		b.ID,
		b.Reference,
		b.CustomerID,
		b.PartyName,
		b.GuestList,
		b.Schedule,
		pax,
		total,
		b.Products,
		b.Status,
		b.StatusBefore,
		b.Stamps,
		b.Billing,
		b.Presentation,
		b.ShareToken,
		b.CreatedBy,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
