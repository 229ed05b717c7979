package booking

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrNegativeCount  = errors.New("pax count cannot be negative")
)

// Product is a priced line item on a booking. Products live in a JSON
// column on the bookings table; order is meaningful.
type Product struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// ComputedAmount is quantity x unit price rounded to 2 places.
func (p Product) ComputedAmount() decimal.Decimal {
	return p.Quantity.Mul(p.UnitPrice).Round(2)
}

// VoucherImage is an uploaded image attached to the tour voucher.
type VoucherImage struct {
	ID    int64  `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// VoucherRow is one itinerary line on the tour voucher.
type VoucherRow struct {
	Time   string `json:"time"`
	Detail string `json:"detail"`
}

// PaxCounts holds the traveller head counts.
type PaxCounts struct {
	Adults   int
	Children int
	Infants  int
	TotalPax int
}

// NewPaxCounts validates the head counts. An omitted or undersized total
// is raised to the sum of the individual counts; an explicit total above
// the sum stands (unclassified travellers).
func NewPaxCounts(adults, children, infants, total int) (PaxCounts, error) {
	if adults < 0 || children < 0 || infants < 0 || total < 0 {
		return PaxCounts{}, ErrNegativeCount
	}
	if sum := adults + children + infants; total < sum {
		total = sum
	}
	return PaxCounts{Adults: adults, Children: children, Infants: infants, TotalPax: total}, nil
}

// Money wraps a non-negative decimal amount with its currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		currency = "THB"
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
