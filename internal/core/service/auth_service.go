package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

// dummyHash keeps the bcrypt cost on the unknown-user path so response
// timing does not reveal whether an email exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("workbase-dummy"), bcrypt.DefaultCost)

// AuthService verifies credentials against the user repository. Session
// minting happens at the transport layer once Login succeeds.
type AuthService struct {
	users   ports.UserRepository
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, limiter: limiter, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// Limiter backend trouble must not lock everyone out; fail open.
			s.log.Warn().Err(err).Msg("login limiter unavailable")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	return user, nil
}

func (s *AuthService) CompleteOnboarding(ctx context.Context, subjectID string) (*domain.User, error) {
	if subjectID == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.SetOnboardingComplete(ctx, subjectID)
}
