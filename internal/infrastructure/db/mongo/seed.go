package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workbase/console-api/internal/core/domain"
)

// SeedUser is one development account inserted by Seed.
type SeedUser struct {
	Email              string
	DisplayName        string
	Password           string
	Role               domain.Role
	OnboardingComplete bool
}

// DefaultSeedUsers are the demo accounts available in development
// deployments, one per role.
var DefaultSeedUsers = []SeedUser{
	{Email: "owner@example.com", DisplayName: "Olivia Owner", Password: "owner123", Role: domain.RoleOwner, OnboardingComplete: true},
	{Email: "manager@example.com", DisplayName: "Max Manager", Password: "manager123", Role: domain.RoleAdmin, OnboardingComplete: true},
	{Email: "member@example.com", DisplayName: "Mia Member", Password: "member123", Role: domain.RoleMember, OnboardingComplete: true},
	{Email: "staff@example.com", DisplayName: "Sam Staff", Password: "staff123", Role: domain.RoleStaff},
	{Email: "viewer@example.com", DisplayName: "Vera Viewer", Password: "viewer123", Role: domain.RoleViewer},
}

// Seed inserts the given accounts when they do not exist yet. Meant for
// development only; never call it with ENV=production.
func Seed(ctx context.Context, repo *MongoUserRepository, users []SeedUser, log zerolog.Logger) error {
	for _, su := range users {
		_, err := repo.FindByEmail(ctx, su.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed lookup %s: %w", su.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash %s: %w", su.Email, err)
		}

		now := time.Now().UTC()
		_, err = repo.Create(ctx, &domain.User{
			Email:              su.Email,
			DisplayName:        su.DisplayName,
			PasswordHash:       string(hash),
			Role:               su.Role,
			OnboardingComplete: su.OnboardingComplete,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil && !errors.Is(err, domain.ErrUserExists) {
			return fmt.Errorf("seed create %s: %w", su.Email, err)
		}

		log.Info().Str("email", su.Email).Str("role", string(su.Role)).Msg("seeded demo account")
	}
	return nil
}
