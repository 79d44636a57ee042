package ports

import (
	"context"

	"github.com/workbase/console-api/internal/core/domain"
)

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Insert(ctx context.Context, project *domain.Project) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	Count(ctx context.Context) (int64, error)
}
