//go:build unit || e2e

package builder

import (
	"time"

	"tourdesk/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	LastLogin    *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	created := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "operator@tourdesk.example",
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarea",
		Role:         "operator",
		IsActive:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(
		u.ID, email, u.PasswordHash, role,
		u.LastLogin, u.IsActive, u.CreatedAt, u.UpdatedAt,
	), nil
}
