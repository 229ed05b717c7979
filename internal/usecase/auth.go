package usecase

import (
	"context"

	"tourdesk/internal/domain/auth"
	"tourdesk/internal/domain/user"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/pkg/jwt"
	"tourdesk/internal/pkg/password"

	"github.com/google/uuid"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email user.Email) (*user.User, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type AuthUseCase interface {
	Login(ctx context.Context, credentials auth.Credentials) (string, *user.User, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials auth.Credentials) (string, *user.User, error) {
	u, err := a.validateUser(ctx, credentials)
	if err != nil {
		return "", nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, errs.Mark(err, errs.ErrTokenGeneration)
	}

	if err := a.userRepo.UpdateLastLogin(ctx, u.ID()); err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (a *authUseCaseImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*user.User, error) {
	u, hashedPassword, err := a.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil || u == nil {
		return nil, errs.Mark(err, errs.ErrUserNotFound)
	}

	if !u.IsActive() {
		return nil, errs.ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	return u, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || u == nil {
		return nil, errs.Mark(err, errs.ErrUserNotFound)
	}

	if !u.IsActive() {
		return nil, errs.ErrUserInactive
	}

	return u, nil
}
