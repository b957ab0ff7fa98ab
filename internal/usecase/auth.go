package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskloop/taskloop/internal/auth"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/email"
	"github.com/taskloop/taskloop/internal/metrics"
	"github.com/taskloop/taskloop/internal/repository"
	"github.com/taskloop/taskloop/internal/token"
)

const minPasswordLen = 6

type AuthUsecase struct {
	users      repository.UserRepository
	tokens     *token.Manager
	email      email.Sender
	logger     *slog.Logger
	bcryptCost int
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Manager, emailSender email.Sender, logger *slog.Logger, bcryptCost int) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		tokens:     tokens,
		email:      emailSender,
		logger:     logger.With("component", "auth_usecase"),
		bcryptCost: bcryptCost,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates the user with a salted password hash and issues a token.
// The welcome email is best-effort: a delivery failure is logged, never
// surfaced to the caller.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) {
	if len(input.Password) < minPasswordLen {
		return nil, "", domain.Validation("Password must be at least 6 characters long")
	}

	hash, err := auth.HashPassword(input.Password, u.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user, err := u.users.Create(ctx, strings.TrimSpace(input.Name), NormalizeEmail(input.Email), hash)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	signed, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	if err := u.email.Send(ctx, user.Email, "Welcome to Taskloop",
		fmt.Sprintf("<p>Hi %s, your account is ready. Happy task hunting!</p>", user.Name)); err != nil {
		u.logger.ErrorContext(ctx, "welcome email", "error", err)
	}

	metrics.SignupsTotal.Inc()
	return user, signed, nil
}

// Login verifies the credentials and issues a fresh token. Unknown email and
// wrong password collapse into the same error so the response never reveals
// which one it was.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, signed, nil
}

// NormalizeEmail is applied before every store lookup or write so the unique
// index sees one canonical spelling.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
