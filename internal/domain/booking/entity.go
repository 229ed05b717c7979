package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyReference = errors.New("booking reference cannot be empty")
)

// Schedule groups the travel dates. All of them may be absent on
// historical rows; the view model layer substitutes "-" when rendering.
type Schedule struct {
	ArrivalDate   *time.Time
	DepartureDate *time.Time
	TravelStart   *time.Time
	TravelEnd     *time.Time
	TimeLimit     *time.Time
	DueDate       *time.Time
}

// Billing groups quote/invoice fields.
type Billing struct {
	QuoteNumber     *string
	InvoiceNumber   *string
	InvoiceStatus   InvoiceStatus
	IsPaid          bool
	InvoicePaidDate *time.Time
}

// Presentation groups free-form fields that only matter for rendering.
type Presentation struct {
	Description    string // HTML
	FlightInfo     string // HTML
	AdminNotes     string
	ManagerMemos   string
	InternalNote   string
	SpecialRequest string
	PickupPoint    string
	PickupTime     string
	VoucherImages  []VoucherImage
	VoucherRows    []VoucherRow
}

// WorkflowStamps records when each stage was entered.
type WorkflowStamps struct {
	ConfirmedAt *time.Time
	QuotedAt    *time.Time
	InvoicedAt  *time.Time
	PaidAt      *time.Time
	VoucheredAt *time.Time
}

// Booking is the aggregate root. Status only changes through ApplyEvent;
// any other mutation bumps updated_at at persistence time, which in turn
// invalidates cached documents.
type Booking struct {
	id        int64
	reference string

	customerID int64
	partyName  *string
	guestList  []string

	schedule Schedule
	pax      PaxCounts
	total    Money
	products []Product

	status           Status
	statusBeforePaid *Status
	stamps           WorkflowStamps
	billing          Billing
	presentation     Presentation

	currentShareToken *string
	createdBy         *uuid.UUID
	createdAt         time.Time
	updatedAt         time.Time
}

// ReconstructBooking rebuilds the aggregate from persisted state.
func ReconstructBooking(
	id int64,
	reference string,
	customerID int64,
	partyName *string,
	guestList []string,
	schedule Schedule,
	pax PaxCounts,
	total Money,
	products []Product,
	status Status,
	statusBeforePaid *Status,
	stamps WorkflowStamps,
	billing Billing,
	presentation Presentation,
	currentShareToken *string,
	createdBy *uuid.UUID,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if reference == "" {
		return nil, ErrEmptyReference
	}
	if !status.IsValid() {
		return nil, ErrUnknownStatus
	}
	return &Booking{
		id:                id,
		reference:         reference,
		customerID:        customerID,
		partyName:         partyName,
		guestList:         guestList,
		schedule:          schedule,
		pax:               pax,
		total:             total,
		products:          products,
		status:            status,
		statusBeforePaid:  statusBeforePaid,
		stamps:            stamps,
		billing:           billing,
		presentation:      presentation,
		currentShareToken: currentShareToken,
		createdBy:         createdBy,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (b *Booking) ID() int64                  { return b.id }
func (b *Booking) Reference() string          { return b.reference }
func (b *Booking) CustomerID() int64          { return b.customerID }
func (b *Booking) PartyName() *string         { return b.partyName }
func (b *Booking) GuestList() []string        { return b.guestList }
func (b *Booking) Schedule() Schedule         { return b.schedule }
func (b *Booking) Pax() PaxCounts             { return b.pax }
func (b *Booking) Total() Money               { return b.total }
func (b *Booking) Products() []Product        { return b.products }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) StatusBeforePaid() *Status  { return b.statusBeforePaid }
func (b *Booking) Stamps() WorkflowStamps     { return b.stamps }
func (b *Booking) Billing() Billing           { return b.billing }
func (b *Booking) Presentation() Presentation { return b.presentation }
func (b *Booking) CurrentShareToken() *string { return b.currentShareToken }
func (b *Booking) CreatedBy() *uuid.UUID      { return b.createdBy }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }

// MutationStamp is the cache invalidation input: updated_at with a
// created_at fallback for rows that were never touched after insert.
func (b *Booking) MutationStamp() time.Time {
	if b.updatedAt.IsZero() {
		return b.createdAt
	}
	return b.updatedAt
}

func (b *Booking) SetCurrentShareToken(token string) {
	b.currentShareToken = &token
}

func (b *Booking) SetQuoteNumber(number string) {
	b.billing.QuoteNumber = &number
}
