package ports

import (
	"context"

	"github.com/workbase/console-api/internal/core/domain"
)

type AuthService interface {
	// Login verifies credentials and returns the account on success.
	// Failures are domain.ErrInvalidCredentials or domain.ErrTooManyAttempts.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// CompleteOnboarding marks the account as onboarded and returns the
	// updated record so the caller can re-issue the session cookie.
	CompleteOnboarding(ctx context.Context, subjectID string) (*domain.User, error)
}
