package response

import (
	"time"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/usecase"

	"github.com/google/uuid"
)

type ProductResponse struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Amount    string `json:"amount"`
}

type BookingResponse struct {
	ID            int64      `json:"id"`
	Reference     string     `json:"reference"`
	Status        string     `json:"status"`
	CustomerID    int64      `json:"customerId"`
	CustomerName  string     `json:"customerName,omitempty"`
	PartyName     *string    `json:"partyName,omitempty"`
	GuestList     []string   `json:"guestList"`
	Adults        int        `json:"adults"`
	Children      int        `json:"children"`
	Infants       int        `json:"infants"`
	TotalPax      int        `json:"totalPax"`
	ArrivalDate   *time.Time `json:"arrivalDate,omitempty"`
	DepartureDate *time.Time `json:"departureDate,omitempty"`
	TravelStart   *time.Time `json:"travelStart,omitempty"`
	TravelEnd     *time.Time `json:"travelEnd,omitempty"`

	TotalAmount string            `json:"totalAmount"`
	Currency    string            `json:"currency"`
	Products    []ProductResponse `json:"products"`

	QuoteNumber     *string    `json:"quoteNumber,omitempty"`
	InvoiceNumber   *string    `json:"invoiceNumber,omitempty"`
	InvoiceStatus   string     `json:"invoiceStatus"`
	IsPaid          bool       `json:"isPaid"`
	InvoicePaidDate *time.Time `json:"invoicePaidDate,omitempty"`

	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	QuotedAt    *time.Time `json:"quotedAt,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	VoucheredAt *time.Time `json:"voucheredAt,omitempty"`

	CurrentShareToken *string   `json:"currentShareToken,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func FromBookingView(view *usecase.BookingView) *BookingResponse {
	b := view.Booking
	sched := b.Schedule()
	bill := b.Billing()
	stamps := b.Stamps()

	resp := &BookingResponse{
		ID:            b.ID(),
		Reference:     b.Reference(),
		Status:        b.Status().String(),
		CustomerID:    b.CustomerID(),
		PartyName:     b.PartyName(),
		GuestList:     b.GuestList(),
		Adults:        b.Pax().Adults,
		Children:      b.Pax().Children,
		Infants:       b.Pax().Infants,
		TotalPax:      b.Pax().TotalPax,
		ArrivalDate:   sched.ArrivalDate,
		DepartureDate: sched.DepartureDate,
		TravelStart:   sched.TravelStart,
		TravelEnd:     sched.TravelEnd,

		TotalAmount: b.Total().Amount().StringFixed(2),
		Currency:    b.Total().Currency(),
		Products:    fromProducts(b.Products()),

		QuoteNumber:     bill.QuoteNumber,
		InvoiceNumber:   bill.InvoiceNumber,
		InvoiceStatus:   bill.InvoiceStatus.String(),
		IsPaid:          bill.IsPaid,
		InvoicePaidDate: bill.InvoicePaidDate,

		ConfirmedAt: stamps.ConfirmedAt,
		QuotedAt:    stamps.QuotedAt,
		PaidAt:      stamps.PaidAt,
		VoucheredAt: stamps.VoucheredAt,

		CurrentShareToken: b.CurrentShareToken(),
		CreatedAt:         b.CreatedAt(),
		UpdatedAt:         b.UpdatedAt(),
	}
	if view.Customer != nil {
		resp.CustomerName = view.Customer.DisplayName()
	}
	return resp
}

func fromProducts(products []booking.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			Name:      p.Name,
			Quantity:  p.Quantity.String(),
			UnitPrice: p.UnitPrice.StringFixed(2),
			Amount:    p.Amount.StringFixed(2),
		})
	}
	return out
}

type TransitionResponse struct {
	BookingID int64     `json:"bookingId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromTransitionResult(r *usecase.TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		BookingID: r.Booking.ID(),
		From:      r.From.String(),
		To:        r.To.String(),
		UpdatedAt: r.Booking.UpdatedAt(),
	}
}

type ActivityEntryResponse struct {
	ID          int64      `json:"id"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	Action      string     `json:"action"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func FromActivityEntries(entries []booking.ActivityEntry) []ActivityEntryResponse {
	out := make([]ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityEntryResponse{
			ID:          e.ID,
			UserID:      e.UserID,
			Action:      e.Action,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

type ShareLinkResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromShareLink(l *usecase.ShareLink) *ShareLinkResponse {
	return &ShareLinkResponse{
		Token:     l.Token,
		URL:       l.URL,
		ExpiresAt: l.ExpiresAt,
	}
}
