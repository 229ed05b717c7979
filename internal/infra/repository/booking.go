package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/pgconv"
)

const bookingColumns = `
	id, reference, customer_id, party_name, guest_list,
	arrival_date, departure_date, travel_start, travel_end, time_limit, due_date,
	adults, children, infants, total_pax,
	total_amount::text, currency, products,
	status, status_before_paid,
	confirmed_at, quoted_at, invoiced_at, paid_at, vouchered_at,
	quote_number, invoice_number, invoice_status, is_paid, invoice_paid_date,
	description, flight_info, admin_notes, manager_memos, internal_note,
	special_request, pickup_point, pickup_time, voucher_images, voucher_rows,
	current_share_token, created_by, created_at, updated_at`

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return r.scanBooking(row)
}

func (r *BookingRepository) FindByReference(ctx context.Context, reference string) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference = $1`, reference)
	return r.scanBooking(row)
}

// UpdateWorkflow persists a transition with compare-and-set on
// (status, updated_at). Zero rows updated while the booking exists means
// another writer won; the caller gets KindConflict.
func (r *BookingRepository) UpdateWorkflow(
	ctx context.Context,
	b *booking.Booking,
	expectedStatus booking.Status,
	expectedUpdatedAt time.Time,
) (time.Time, error) {
	stamps := b.Stamps()
	bill := b.Billing()

	var statusBefore *string
	if sbp := b.StatusBeforePaid(); sbp != nil {
		s := sbp.String()
		statusBefore = &s
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET
			status = $1,
			status_before_paid = $2,
			confirmed_at = $3,
			quoted_at = $4,
			paid_at = $5,
			vouchered_at = $6,
			quote_number = $7,
			invoice_number = $8,
			invoice_status = $9,
			is_paid = $10,
			invoice_paid_date = $11,
			updated_at = now()
		WHERE id = $12 AND status = $13 AND updated_at = $14`,
		b.Status().String(),
		pgconv.StringPtrToPgtype(statusBefore),
		pgconv.TimePtrToPgtype(stamps.ConfirmedAt),
		pgconv.TimePtrToPgtype(stamps.QuotedAt),
		pgconv.TimePtrToPgtype(stamps.PaidAt),
		pgconv.TimePtrToPgtype(stamps.VoucheredAt),
		pgconv.StringPtrToPgtype(bill.QuoteNumber),
		pgconv.StringPtrToPgtype(bill.InvoiceNumber),
		string(bill.InvoiceStatus),
		bill.IsPaid,
		pgconv.TimePtrToPgtype(bill.InvoicePaidDate),
		b.ID(),
		expectedStatus.String(),
		pgconv.TimeToPgtype(expectedUpdatedAt),
	)
	if err != nil {
		return time.Time{}, wrapPgError("failed to update booking workflow", err)
	}

	if tag.RowsAffected() == 0 {
		// distinguish a lost CAS from a vanished row
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, b.ID()).Scan(&exists); checkErr != nil {
			return time.Time{}, infra.WrapRepoErr("failed to check booking existence", checkErr)
		}
		if !exists {
			return time.Time{}, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		}
		return time.Time{}, infra.WrapRepoErr("booking modified concurrently", nil, infra.KindConflict)
	}

	var updatedAt pgtype.Timestamptz
	if err := r.db.QueryRow(ctx,
		`SELECT updated_at FROM bookings WHERE id = $1`, b.ID()).Scan(&updatedAt); err != nil {
		return time.Time{}, infra.WrapRepoErr("failed to read updated_at", err)
	}
	return pgconv.TimeFromPgtype(updatedAt), nil
}

// SetShareToken stores the latest issued public token on the booking
// without bumping updated_at, so issuing a link never invalidates cache.
func (r *BookingRepository) SetShareToken(ctx context.Context, id int64, token string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET current_share_token = $1 WHERE id = $2`, token, id)
	if err != nil {
		return wrapPgError("failed to set share token", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// QuoteNumberExists reports whether any booking already carries the number.
func (r *BookingRepository) QuoteNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE quote_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check quote number", err)
	}
	return exists, nil
}

type bookingRow struct {
	id               int64
	reference        string
	customerID       int64
	partyName        pgtype.Text
	guestList        []byte
	arrivalDate      pgtype.Timestamptz
	departureDate    pgtype.Timestamptz
	travelStart      pgtype.Timestamptz
	travelEnd        pgtype.Timestamptz
	timeLimit        pgtype.Timestamptz
	dueDate          pgtype.Timestamptz
	adults           int32
	children         int32
	infants          int32
	totalPax         int32
	totalAmount      string
	currency         string
	products         []byte
	status           string
	statusBeforePaid pgtype.Text
	confirmedAt      pgtype.Timestamptz
	quotedAt         pgtype.Timestamptz
	invoicedAt       pgtype.Timestamptz
	paidAt           pgtype.Timestamptz
	voucheredAt      pgtype.Timestamptz
	quoteNumber      pgtype.Text
	invoiceNumber    pgtype.Text
	invoiceStatus    string
	isPaid           bool
	invoicePaidDate  pgtype.Timestamptz
	description      pgtype.Text
	flightInfo       pgtype.Text
	adminNotes       pgtype.Text
	managerMemos     pgtype.Text
	internalNote     pgtype.Text
	specialRequest   pgtype.Text
	pickupPoint      pgtype.Text
	pickupTime       pgtype.Text
	voucherImages    []byte
	voucherRows      []byte
	shareToken       pgtype.Text
	createdBy        pgtype.UUID
	createdAt        pgtype.Timestamptz
	updatedAt        pgtype.Timestamptz
}

func (r *BookingRepository) scanBooking(row pgx.Row) (*booking.Booking, error) {
	var s bookingRow
	err := row.Scan(
		&s.id, &s.reference, &s.customerID, &s.partyName, &s.guestList,
		&s.arrivalDate, &s.departureDate, &s.travelStart, &s.travelEnd, &s.timeLimit, &s.dueDate,
		&s.adults, &s.children, &s.infants, &s.totalPax,
		&s.totalAmount, &s.currency, &s.products,
		&s.status, &s.statusBeforePaid,
		&s.confirmedAt, &s.quotedAt, &s.invoicedAt, &s.paidAt, &s.voucheredAt,
		&s.quoteNumber, &s.invoiceNumber, &s.invoiceStatus, &s.isPaid, &s.invoicePaidDate,
		&s.description, &s.flightInfo, &s.adminNotes, &s.managerMemos, &s.internalNote,
		&s.specialRequest, &s.pickupPoint, &s.pickupTime, &s.voucherImages, &s.voucherRows,
		&s.shareToken, &s.createdBy, &s.createdAt, &s.updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}
	return rowToBooking(s)
}

func rowToBooking(s bookingRow) (*booking.Booking, error) {
	guestList, err := decodeJSONSlice[string](s.guestList)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt guest_list column", err)
	}
	products, err := decodeJSONSlice[booking.Product](s.products)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt products column", err)
	}
	voucherImages, err := decodeJSONSlice[booking.VoucherImage](s.voucherImages)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt voucher_images column", err)
	}
	voucherRows, err := decodeJSONSlice[booking.VoucherRow](s.voucherRows)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt voucher_rows column", err)
	}

	amount, err := decimal.NewFromString(s.totalAmount)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt total_amount column", err)
	}
	total, err := booking.NewMoney(amount, s.currency)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total amount", err)
	}
	pax, err := booking.NewPaxCounts(int(s.adults), int(s.children), int(s.infants), int(s.totalPax))
	if err != nil {
		return nil, infra.WrapRepoErr("invalid pax counts", err)
	}

	var statusBefore *booking.Status
	if sbp := pgconv.StringPtrFromPgtype(s.statusBeforePaid); sbp != nil {
		st := booking.Status(*sbp)
		statusBefore = &st
	}

	b, err := booking.ReconstructBooking(
		s.id,
		s.reference,
		s.customerID,
		pgconv.StringPtrFromPgtype(s.partyName),
		guestList,
		booking.Schedule{
			ArrivalDate:   pgconv.TimePtrFromPgtype(s.arrivalDate),
			DepartureDate: pgconv.TimePtrFromPgtype(s.departureDate),
			TravelStart:   pgconv.TimePtrFromPgtype(s.travelStart),
			TravelEnd:     pgconv.TimePtrFromPgtype(s.travelEnd),
			TimeLimit:     pgconv.TimePtrFromPgtype(s.timeLimit),
			DueDate:       pgconv.TimePtrFromPgtype(s.dueDate),
		},
		pax,
		total,
		products,
		booking.Status(s.status),
		statusBefore,
		booking.WorkflowStamps{
			ConfirmedAt: pgconv.TimePtrFromPgtype(s.confirmedAt),
			QuotedAt:    pgconv.TimePtrFromPgtype(s.quotedAt),
			InvoicedAt:  pgconv.TimePtrFromPgtype(s.invoicedAt),
			PaidAt:      pgconv.TimePtrFromPgtype(s.paidAt),
			VoucheredAt: pgconv.TimePtrFromPgtype(s.voucheredAt),
		},
		booking.Billing{
			QuoteNumber:     pgconv.StringPtrFromPgtype(s.quoteNumber),
			InvoiceNumber:   pgconv.StringPtrFromPgtype(s.invoiceNumber),
			InvoiceStatus:   booking.InvoiceStatus(s.invoiceStatus),
			IsPaid:          s.isPaid,
			InvoicePaidDate: pgconv.TimePtrFromPgtype(s.invoicePaidDate),
		},
		booking.Presentation{
			Description:    textOrEmpty(s.description),
			FlightInfo:     textOrEmpty(s.flightInfo),
			AdminNotes:     textOrEmpty(s.adminNotes),
			ManagerMemos:   textOrEmpty(s.managerMemos),
			InternalNote:   textOrEmpty(s.internalNote),
			SpecialRequest: textOrEmpty(s.specialRequest),
			PickupPoint:    textOrEmpty(s.pickupPoint),
			PickupTime:     textOrEmpty(s.pickupTime),
			VoucherImages:  voucherImages,
			VoucherRows:    voucherRows,
		},
		pgconv.StringPtrFromPgtype(s.shareToken),
		pgconv.UUIDPtrFromPgtype(s.createdBy),
		pgconv.TimeFromPgtype(s.createdAt),
		pgconv.TimeFromPgtype(s.updatedAt),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
	}
	return b, nil
}

func decodeJSONSlice[T any](raw []byte) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func wrapPgError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case "23503":
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
