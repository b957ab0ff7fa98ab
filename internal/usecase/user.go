package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/repository"
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes name and/or email; absent fields are untouched.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, input repository.UpdateProfileInput) (*domain.User, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, domain.Validation("Name cannot be empty")
		}
		input.Name = &trimmed
	}
	if input.Email != nil {
		normalized := NormalizeEmail(*input.Email)
		input.Email = &normalized
	}

	user, err := u.users.UpdateProfile(ctx, userID, input)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
