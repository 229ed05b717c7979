//go:build unit

package booking_test

import (
	"testing"
	"time"

	"tourdesk/internal/domain/booking"
	"tourdesk/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, entity)

		assert.Equal(t, "TD-2025-0401", entity.Reference())
		assert.Equal(t, booking.StatusConfirmed, entity.Status())
		assert.Equal(t, 2, entity.Pax().TotalPax)
		assert.Equal(t, "THB", entity.Total().Currency())
	})

	t.Run("empty reference is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		b.Reference = ""
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, booking.ErrEmptyReference)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.Status("archived"))
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, booking.ErrUnknownStatus)
	})
}

func TestMutationStamp(t *testing.T) {
	created := time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("uses updated_at when set", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		b.CreatedAt = created
		b.UpdatedAt = updated
		entity, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, updated, entity.MutationStamp())
	})

	t.Run("falls back to created_at", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		b.CreatedAt = created
		b.UpdatedAt = time.Time{}
		entity, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, created, entity.MutationStamp())
	})
}

func TestPaxCounts(t *testing.T) {
	t.Run("total is derived when omitted", func(t *testing.T) {
		pax, err := booking.NewPaxCounts(2, 1, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 4, pax.TotalPax)
	})

	t.Run("explicit total above the sum wins", func(t *testing.T) {
		pax, err := booking.NewPaxCounts(2, 0, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, pax.TotalPax)
	})

	t.Run("total below the head count is raised to the sum", func(t *testing.T) {
		pax, err := booking.NewPaxCounts(2, 1, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, pax.TotalPax)
	})

	t.Run("negative counts are rejected", func(t *testing.T) {
		_, err := booking.NewPaxCounts(-1, 0, 0, 0)
		assert.ErrorIs(t, err, booking.ErrNegativeCount)
	})
}

func TestProductComputedAmount(t *testing.T) {
	p := booking.Product{
		Quantity:  decimal.NewFromInt(3),
		UnitPrice: decimal.RequireFromString("1234.555"),
	}
	assert.True(t, p.ComputedAmount().Equal(decimal.RequireFromString("3703.67")),
		"got %s", p.ComputedAmount())
}
