package repository

import (
	"context"

	"github.com/taskloop/taskloop/internal/domain"
)

// UpdateProfileInput applies only the fields that are non-nil.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	// FindByEmail returns the user including the password hash, for login.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.User, error)
}
