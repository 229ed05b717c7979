package response

import (
	"time"

	"tourdesk/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		LastLogin: u.LastLogin(),
	}
}
