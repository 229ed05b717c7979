package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/errs"
)

// Number sequence kinds.
const (
	SequenceQuote = "quote"
)

const maxAllocationAttempts = 10

// SequenceRepository hands out monotonically increasing document numbers
// from the number_sequences table. Allocation is a transactional
// read-modify-write with a uniqueness check against issued numbers and a
// bounded retry on collision.
type SequenceRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewSequenceRepository(db *pgxpool.Pool, logger *slog.Logger) *SequenceRepository {
	return &SequenceRepository{db: db, logger: logger}
}

// NextQuoteNumber allocates the next quote number, formatted Q-%06d.
// After maxAllocationAttempts collisions, it returns
// errs.ErrNumberAllocationExhausted; the caller falls back to a
// timestamp-derived identifier so the workflow always makes progress.
func (r *SequenceRepository) NextQuoteNumber(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		number, err := r.allocate(ctx, SequenceQuote)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
				continue
			}
			return "", err
		}

		candidate := fmt.Sprintf("Q-%06d", number)
		taken, err := r.numberTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if taken {
			r.logger.Warn("quote number collision, retrying", "number", candidate, "attempt", attempt)
			continue
		}
		return candidate, nil
	}
	return "", errs.ErrNumberAllocationExhausted
}

func (r *SequenceRepository) allocate(ctx context.Context, kind string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to begin sequence transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var value int64
	err = tx.QueryRow(ctx, `
		INSERT INTO number_sequences (kind, value) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET value = number_sequences.value + 1
		RETURNING value`, kind).Scan(&value)
	if err != nil {
		return 0, wrapPgError("failed to advance sequence", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, infra.WrapRepoErr("failed to commit sequence", err, infra.KindConflict)
	}
	return value, nil
}

func (r *SequenceRepository) numberTaken(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE quote_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check quote number uniqueness", err)
	}
	return exists, nil
}
