// Package document maps booking workflow state to the artifact that the
// public endpoints serve: which template to render, how to name the file,
// and whether the paid banner is injected.
package document

import (
	"fmt"
	"log/slog"
	"time"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/pkg/sharetoken"
)

// Kind identifies the customer-facing document for a workflow stage.
type Kind string

const (
	KindServiceProposal    Kind = "ServiceProposal"
	KindQuote              Kind = "Quote"
	KindProvisionalReceipt Kind = "ProvisionalReceipt"
	KindTourVoucher        Kind = "TourVoucher"
)

const filenameTokenPrefixLen = 12

// TemplatePublicPage is the HTML landing page. It is rendered directly,
// never through a status plan.
const TemplatePublicPage = "public_page"

// Plan is the render decision for one booking state.
type Plan struct {
	Kind          Kind
	Template      string
	FilenameStem  string
	ReceiptBanner bool
}

// PlanFor resolves the document plan for a status. The second return is
// false for cancelled bookings, which have no public document. Unknown
// statuses fall back to the service proposal and log a warning.
func PlanFor(status booking.Status, logger *slog.Logger) (Plan, bool) {
	switch status {
	case booking.StatusDraft, booking.StatusPending, booking.StatusConfirmed:
		return Plan{
			Kind:         KindServiceProposal,
			Template:     "service_proposal",
			FilenameStem: "Service_Proposal",
		}, true
	case booking.StatusQuoted:
		return Plan{
			Kind:         KindQuote,
			Template:     "quote",
			FilenameStem: "Quote",
		}, true
	case booking.StatusPaid:
		return Plan{
			Kind:          KindProvisionalReceipt,
			Template:      "quote",
			FilenameStem:  "Quote_ProvisionalReceipt",
			ReceiptBanner: true,
		}, true
	case booking.StatusVouchered, booking.StatusCompleted:
		return Plan{
			Kind:         KindTourVoucher,
			Template:     "tour_voucher",
			FilenameStem: "Tour_Voucher",
		}, true
	case booking.StatusCancelled:
		return Plan{}, false
	default:
		if logger != nil {
			logger.Warn("unknown booking status, serving service proposal", "status", status.String())
		}
		return Plan{
			Kind:         KindServiceProposal,
			Template:     "service_proposal",
			FilenameStem: "Service_Proposal",
		}, true
	}
}

// Filename builds the download name: {stem}_{ref}_{unix}_{tokenPrefix12}.{ext}.
func (p Plan) Filename(reference string, at time.Time, token, ext string) string {
	return fmt.Sprintf("%s_%s_%d_%s.%s",
		p.FilenameStem, reference, at.Unix(), sharetoken.Prefix(token, filenameTokenPrefixLen), ext)
}
