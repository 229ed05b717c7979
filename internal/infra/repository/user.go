package repository

import (
	"context"

	"tourdesk/internal/domain/user"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password_hash, role, is_active, last_login, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail returns the staff user together with the stored password hash
// so the caller can verify credentials without a second query.
func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, string, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email.Value())
	u, hash, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return u, hash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, _, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, string, error) {
	var (
		id        uuid.UUID
		emailStr  string
		hash      string
		roleStr   string
		isActive  bool
		lastLogin pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &emailStr, &hash, &roleStr, &isActive, &lastLogin, &createdAt, &updatedAt); err != nil {
		return nil, "", err
	}

	email, err := user.NewEmail(emailStr)
	if err != nil {
		return nil, "", err
	}
	role, err := user.NewRole(roleStr)
	if err != nil {
		return nil, "", err
	}

	entity := user.ReconstructUser(
		id, email, hash, role,
		pgconv.TimePtrFromPgtype(lastLogin),
		isActive,
		createdAt.Time, updatedAt.Time,
	)
	return entity, hash, nil
}
