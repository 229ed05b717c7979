//go:build unit

package viewmodel_test

import (
	"testing"
	"time"

	"tourdesk/internal/document/viewmodel"
	"tourdesk/internal/domain/booking"
	"tourdesk/internal/domain/customer"
	"tourdesk/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

var company = viewmodel.Company{
	Name:     "Tourdesk Travel Co., Ltd.",
	BaseURL:  "https://booking.example.com",
	ImageDir: "/var/lib/tourdesk/uploads",
}

func buildData(t *testing.T, mutate func(*builder.BookingBuilder), c *customer.Customer) *viewmodel.Data {
	t.Helper()
	b := builder.NewBookingBuilder()
	if mutate != nil {
		mutate(b)
	}
	entity, err := b.BuildDomain()
	require.NoError(t, err)
	return viewmodel.Build(entity, c, generatedAt, company)
}

func testCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.ReconstructCustomer(
		77, "Somchai", "Jaidee", "somchai@example.com", "+66 81 234 5678", "", "Thai",
		generatedAt, generatedAt,
	)
	require.NoError(t, err)
	return c
}

func TestBuild(t *testing.T) {
	t.Run("with customer", func(t *testing.T) {
		d := buildData(t, nil, testCustomer(t))

		assert.Equal(t, "TD-2025-0401", d.Reference)
		assert.Equal(t, "Somchai Jaidee", d.CustomerName)
		assert.Equal(t, "Somchai Family", d.PartyName)
		assert.Equal(t, "18 Apr 2025", d.ArrivalDate)
		assert.Equal(t, "2025-04-18", d.ArrivalDateISO)
		assert.Equal(t, "18 Apr 2025 to 20 Apr 2025", d.TravelPeriod)
		assert.Equal(t, "15 Mar 2025 10:30", d.GeneratedAt)
		assert.Equal(t, "12500.00", d.TotalDisplay)
	})

	t.Run("missing customer never fails", func(t *testing.T) {
		d := buildData(t, nil, nil)
		assert.Equal(t, "-", d.CustomerName)
		assert.Equal(t, "-", d.CustomerPhone)
	})

	t.Run("party name falls back to customer name", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) { b.PartyName = nil }, testCustomer(t))
		assert.Equal(t, "Somchai Jaidee", d.PartyName)
	})

	t.Run("no products shows dash total", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) {
			b.Products = nil
			b.TotalAmount = decimal.Zero
		}, nil)
		assert.Equal(t, "-", d.TotalDisplay)
		assert.Empty(t, d.Products)
	})

	t.Run("missing dates become dashes", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) {
			b.Schedule = booking.Schedule{}
		}, nil)
		assert.Equal(t, "-", d.ArrivalDate)
		assert.Equal(t, "-", d.TravelPeriod)
		assert.Equal(t, "-", d.TimeLimit)
	})
}

func TestCleanGuestList(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain list passes through",
			in:   []string{"Somchai J.", "Suda J."},
			want: []string{"Somchai J.", "Suda J."},
		},
		{
			name: "single json encoded string is decoded",
			in:   []string{`["Anna K.","Boris M."]`},
			want: []string{"Anna K.", "Boris M."},
		},
		{
			name: "html markup is stripped",
			in:   []string{"<p>Mr. Smith</p><br><b>Mrs. Smith</b>"},
			want: []string{"Mr. Smith", "Mrs. Smith"},
		},
		{
			name: "entities are unescaped",
			in:   []string{"O&#39;Brien &amp; family"},
			want: []string{"O'Brien & family"},
		},
		{
			name: "blank lines are dropped",
			in:   []string{"  ", "Somchai", "", "\n"},
			want: []string{"Somchai"},
		},
		{
			name: "invalid json stays literal",
			in:   []string{"[not json"},
			want: []string{"[not json"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, viewmodel.CleanGuestList(tc.in)); diff != "" {
				t.Errorf("guest list mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProductRows(t *testing.T) {
	t.Run("supplied amount wins and flags a discrepancy", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) {
			b.Products = []booking.Product{{
				Name:      "City Tour",
				Quantity:  decimal.NewFromInt(2),
				UnitPrice: decimal.NewFromInt(1000),
				Amount:    decimal.NewFromInt(1900),
			}}
		}, nil)

		require.Len(t, d.Products, 1)
		row := d.Products[0]
		assert.Equal(t, "1900.00", row.Amount)
		assert.True(t, row.Discrepancy)
	})

	t.Run("zero amount uses the computed value", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) {
			b.Products = []booking.Product{{
				Name:      "Transfer",
				Quantity:  decimal.NewFromInt(3),
				UnitPrice: decimal.RequireFromString("450.50"),
			}}
		}, nil)

		row := d.Products[0]
		assert.Equal(t, "1351.50", row.Amount)
		assert.False(t, row.Discrepancy)
	})

	t.Run("tiny rounding difference is tolerated", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) {
			b.Products = []booking.Product{{
				Name:      "Lunch",
				Quantity:  decimal.NewFromInt(1),
				UnitPrice: decimal.RequireFromString("100.00"),
				Amount:    decimal.RequireFromString("100.01"),
			}}
		}, nil)
		assert.False(t, d.Products[0].Discrepancy)
	})
}

func TestVoucherImages(t *testing.T) {
	t.Run("relative url resolves against base and upload dir", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) {
			b.Presentation.VoucherImages = []booking.VoucherImage{
				{ID: 1, URL: "/uploads/map.png", Title: "Meeting point"},
			}
		}, nil)

		require.Len(t, d.VoucherImages, 1)
		img := d.VoucherImages[0]
		assert.Equal(t, "/var/lib/tourdesk/uploads/map.png", img.LocalPath)
		assert.Equal(t, "https://booking.example.com/uploads/map.png", img.SourceURL)
	})

	t.Run("absolute url keeps its source", func(t *testing.T) {
		d := buildData(t, func(b *builder.BookingBuilder) {
			b.Presentation.VoucherImages = []booking.VoucherImage{
				{ID: 2, URL: "https://cdn.example.com/img/beach.jpg"},
			}
		}, nil)

		assert.Equal(t, "https://cdn.example.com/img/beach.jpg", d.VoucherImages[0].SourceURL)
	})
}
