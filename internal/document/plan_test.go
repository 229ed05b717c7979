//go:build unit

package document_test

import (
	"log/slog"
	"testing"
	"time"

	"tourdesk/internal/document"
	"tourdesk/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFor(t *testing.T) {
	logger := slog.Default()

	cases := []struct {
		status   booking.Status
		kind     document.Kind
		template string
		banner   bool
	}{
		{booking.StatusDraft, document.KindServiceProposal, "service_proposal", false},
		{booking.StatusPending, document.KindServiceProposal, "service_proposal", false},
		{booking.StatusConfirmed, document.KindServiceProposal, "service_proposal", false},
		{booking.StatusQuoted, document.KindQuote, "quote", false},
		{booking.StatusPaid, document.KindProvisionalReceipt, "quote", true},
		{booking.StatusVouchered, document.KindTourVoucher, "tour_voucher", false},
		{booking.StatusCompleted, document.KindTourVoucher, "tour_voucher", false},
	}
	for _, tc := range cases {
		t.Run(tc.status.String(), func(t *testing.T) {
			plan, ok := document.PlanFor(tc.status, logger)
			require.True(t, ok)
			assert.Equal(t, tc.kind, plan.Kind)
			assert.Equal(t, tc.template, plan.Template)
			assert.Equal(t, tc.banner, plan.ReceiptBanner)
		})
	}

	t.Run("cancelled has no document", func(t *testing.T) {
		_, ok := document.PlanFor(booking.StatusCancelled, logger)
		assert.False(t, ok)
	})

	t.Run("unknown status falls back to service proposal", func(t *testing.T) {
		plan, ok := document.PlanFor(booking.Status("archived"), logger)
		require.True(t, ok)
		assert.Equal(t, document.KindServiceProposal, plan.Kind)
	})
}

func TestPlanFilename(t *testing.T) {
	plan, ok := document.PlanFor(booking.StatusPaid, nil)
	require.True(t, ok)

	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	name := plan.Filename("TD-2025-0401", at, "abcdefghijklmnop.sig", "pdf")

	assert.Equal(t, "Quote_ProvisionalReceipt_TD-2025-0401_1742032800_abcdefghijkl.pdf", name)
}
