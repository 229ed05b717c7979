package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/pgconv"
)

// ActivityRepository appends and lists audit records. Rows are immutable;
// there is deliberately no update or delete.
type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, entry booking.ActivityEntry) error {
	var bookingID pgtype.Int8
	if entry.BookingID != nil {
		bookingID = pgtype.Int8{Int64: *entry.BookingID, Valid: true}
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO activity_logs (booking_id, user_id, action, description, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		bookingID,
		pgconv.UUIDPtrToPgtype(entry.UserID),
		entry.Action,
		entry.Description,
	)
	if err != nil {
		return wrapPgError("failed to append activity log", err)
	}
	return nil
}

func (r *ActivityRepository) ListByBooking(ctx context.Context, bookingID int64, limit int32) ([]booking.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, booking_id, user_id, action, description, created_at
		FROM activity_logs
		WHERE booking_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, bookingID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list activity logs", err)
	}
	defer rows.Close()

	var out []booking.ActivityEntry
	for rows.Next() {
		var (
			entry     booking.ActivityEntry
			bid       pgtype.Int8
			uid       pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&entry.ID, &bid, &uid, &entry.Action, &entry.Description, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan activity log", err)
		}
		if bid.Valid {
			v := bid.Int64
			entry.BookingID = &v
		}
		entry.UserID = pgconv.UUIDPtrFromPgtype(uid)
		entry.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate activity logs", err)
	}
	return out, nil
}
