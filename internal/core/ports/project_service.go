package ports

import (
	"context"

	"github.com/workbase/console-api/internal/core/domain"
)

// CreateProjectInput is the DTO passed from the transport layer to ProjectService.
type CreateProjectInput struct {
	Name        string
	Description string
}

type ProjectService interface {
	// List returns the projects visible to the session: owners and admins
	// see every project, everyone else only their own.
	List(ctx context.Context, sess domain.Session) ([]domain.Project, error)
	Create(ctx context.Context, sess domain.Session, in CreateProjectInput) (*domain.Project, error)
}
