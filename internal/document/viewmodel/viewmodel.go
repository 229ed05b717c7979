// Package viewmodel flattens a booking aggregate into the render-ready
// data a document template consumes. Build is a pure function of its
// inputs: same booking, same generation timestamp, same output.
package viewmodel

import (
	"encoding/json"
	"html"
	"html/template"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/domain/customer"
)

const (
	missingValue   = "-"
	dateFormat     = "02 Jan 2006"
	dateTimeFormat = "02 Jan 2006 15:04"
	isoDateFormat  = "2006-01-02"
)

// amounts closer than this to the computed value are not flagged
var discrepancyTolerance = decimal.NewFromFloat(0.01)

var stripPolicy = bluemonday.StrictPolicy()

// block-level closers and breaks become line boundaries before stripping,
// otherwise adjacent names would run together
var lineBreakTags = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"</p>", "\n", "</div>", "\n", "</li>", "\n",
)

// Company carries the static letterhead fields from configuration.
type Company struct {
	Name         string
	ContactBlock string
	BaseURL      string
	ImageDir     string
}

// ProductRow is one rendered line item.
type ProductRow struct {
	Name        string
	Quantity    string
	UnitPrice   string
	Amount      string
	Discrepancy bool
}

// ImageRow is a voucher image with a renderer-resolvable location.
// LocalPath is set when the image lives under the upload directory;
// the renderer never fetches HTTP URLs.
type ImageRow struct {
	Title     string
	LocalPath string
	SourceURL string
}

// Data is the flat, typed view model. Fields are enumerated on purpose:
// templates reference nothing that is not listed here.
type Data struct {
	BookingID int64
	Reference string
	Status    string

	CustomerName        string
	CustomerPhone       string
	CustomerEmail       string
	CustomerNationality string
	PartyName           string
	Guests              []string

	ArrivalDate      string
	ArrivalDateISO   string
	DepartureDate    string
	DepartureDateISO string
	TravelPeriod     string
	TimeLimit        string
	DueDate          string

	Adults   int
	Children int
	Infants  int
	TotalPax int

	Products     []ProductRow
	TotalDisplay string
	Currency     string

	Description    template.HTML
	FlightInfo     template.HTML
	SpecialRequest string
	PickupPoint    string
	PickupTime     string
	VoucherImages  []ImageRow
	VoucherRows    []booking.VoucherRow

	QuoteNumber     string
	InvoiceNumber   string
	IsPaid          bool
	InvoicePaidDate string

	ShowReceiptBanner bool

	// ShareToken is set for the public HTML page so it can link to the
	// PDF and PNG variants of the same document.
	ShareToken string

	GeneratedAt string
	Company     Company
}

// Build produces the view model. It never fails: missing optional fields
// become "-" or empty collections.
func Build(b *booking.Booking, c *customer.Customer, generatedAt time.Time, company Company) *Data {
	d := &Data{
		BookingID:   b.ID(),
		Reference:   b.Reference(),
		Status:      b.Status().String(),
		GeneratedAt: generatedAt.UTC().Format(dateTimeFormat),
		Company:     company,
		Currency:    b.Total().Currency(),
	}

	if c != nil {
		d.CustomerName = orDash(c.DisplayName())
		d.CustomerPhone = orDash(c.Phone())
		d.CustomerEmail = orDash(c.Email())
		d.CustomerNationality = orDash(c.Nationality())
	} else {
		d.CustomerName = missingValue
		d.CustomerPhone = missingValue
		d.CustomerEmail = missingValue
		d.CustomerNationality = missingValue
	}

	if pn := b.PartyName(); pn != nil && strings.TrimSpace(*pn) != "" {
		d.PartyName = *pn
	} else {
		d.PartyName = d.CustomerName
	}

	d.Guests = CleanGuestList(b.GuestList())

	sched := b.Schedule()
	d.ArrivalDate = formatDate(sched.ArrivalDate)
	d.ArrivalDateISO = formatISO(sched.ArrivalDate)
	d.DepartureDate = formatDate(sched.DepartureDate)
	d.DepartureDateISO = formatISO(sched.DepartureDate)
	d.TravelPeriod = formatPeriod(sched.TravelStart, sched.TravelEnd)
	d.TimeLimit = formatDateTime(sched.TimeLimit)
	d.DueDate = formatDate(sched.DueDate)

	pax := b.Pax()
	d.Adults = pax.Adults
	d.Children = pax.Children
	d.Infants = pax.Infants
	d.TotalPax = pax.TotalPax

	d.Products = lo.Map(b.Products(), func(p booking.Product, _ int) ProductRow {
		return buildProductRow(p)
	})
	if len(d.Products) == 0 {
		d.TotalDisplay = missingValue
	} else {
		d.TotalDisplay = b.Total().Amount().StringFixed(2)
	}

	pres := b.Presentation()
	d.Description = template.HTML(pres.Description) //nolint:gosec // staff-authored HTML by design of the source data
	d.FlightInfo = template.HTML(pres.FlightInfo)   //nolint:gosec
	d.SpecialRequest = pres.SpecialRequest
	d.PickupPoint = orDash(pres.PickupPoint)
	d.PickupTime = orDash(pres.PickupTime)
	d.VoucherRows = pres.VoucherRows
	d.VoucherImages = lo.Map(pres.VoucherImages, func(img booking.VoucherImage, _ int) ImageRow {
		return resolveImage(img, company)
	})

	bill := b.Billing()
	d.QuoteNumber = orDashPtr(bill.QuoteNumber)
	d.InvoiceNumber = orDashPtr(bill.InvoiceNumber)
	d.IsPaid = bill.IsPaid
	d.InvoicePaidDate = formatDate(bill.InvoicePaidDate)

	return d
}

// CleanGuestList accepts either an already-split sequence or a single
// JSON-encoded string of names. Entries are HTML-stripped, unescaped and
// line-split; empty lines are dropped, order is preserved.
func CleanGuestList(raw []string) []string {
	entries := raw
	if len(raw) == 1 {
		if decoded, ok := decodeJSONList(raw[0]); ok {
			entries = decoded
		}
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		stripped := html.UnescapeString(stripPolicy.Sanitize(lineBreakTags.Replace(entry)))
		for _, line := range strings.Split(stripped, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

func decodeJSONList(s string) ([]string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, false
	}
	return list, true
}

func buildProductRow(p booking.Product) ProductRow {
	computed := p.ComputedAmount()
	amount := computed
	discrepancy := false
	if !p.Amount.IsZero() {
		amount = p.Amount
		if p.Amount.Sub(computed).Abs().GreaterThan(discrepancyTolerance) {
			discrepancy = true
		}
	}
	return ProductRow{
		Name:        orDash(p.Name),
		Quantity:    p.Quantity.String(),
		UnitPrice:   p.UnitPrice.StringFixed(2),
		Amount:      amount.StringFixed(2),
		Discrepancy: discrepancy,
	}
}

// resolveImage prefers a path under the upload directory so the renderer
// can embed the file directly. Anything else keeps its absolute source URL
// for the HTML summary page only.
func resolveImage(img booking.VoucherImage, company Company) ImageRow {
	row := ImageRow{Title: img.Title, SourceURL: img.URL}

	if u, err := url.Parse(img.URL); err == nil {
		base := path.Base(u.Path)
		if base != "" && base != "." && base != "/" && company.ImageDir != "" {
			row.LocalPath = path.Join(company.ImageDir, base)
		}
		if !u.IsAbs() && company.BaseURL != "" {
			row.SourceURL = strings.TrimRight(company.BaseURL, "/") + "/" + strings.TrimLeft(img.URL, "/")
		}
	}
	return row
}

func formatDate(t *time.Time) string {
	if t == nil {
		return missingValue
	}
	return asUTC(*t).Format(dateFormat)
}

func formatISO(t *time.Time) string {
	if t == nil {
		return missingValue
	}
	return asUTC(*t).Format(isoDateFormat)
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return missingValue
	}
	return asUTC(*t).Format(dateTimeFormat)
}

func formatPeriod(start, end *time.Time) string {
	if start == nil && end == nil {
		return missingValue
	}
	return formatDate(start) + " to " + formatDate(end)
}

// asUTC treats naive timestamps as UTC for display; no other timezone
// conversion happens here.
func asUTC(t time.Time) time.Time {
	if t.Location() == time.Local {
		return t.UTC()
	}
	return t
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingValue
	}
	return s
}

func orDashPtr(s *string) string {
	if s == nil {
		return missingValue
	}
	return orDash(*s)
}
