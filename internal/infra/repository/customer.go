package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourdesk/internal/domain/customer"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/pgconv"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var (
		firstName, lastName                pgtype.Text
		email, phone, address, nationality pgtype.Text
		createdAt, updatedAt               pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT first_name, last_name, email, phone, address, nationality, created_at, updated_at
		FROM customers WHERE id = $1`, id).Scan(
		&firstName, &lastName, &email, &phone, &address, &nationality, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}

	c, err := customer.ReconstructCustomer(
		id,
		textOrEmpty(firstName),
		textOrEmpty(lastName),
		textOrEmpty(email),
		textOrEmpty(phone),
		textOrEmpty(address),
		textOrEmpty(nationality),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct customer", err)
	}
	return c, nil
}
