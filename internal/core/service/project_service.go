package service

import (
	"context"
	"strings"
	"time"

	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

// ProjectService implements project listing and creation on top of the
// repository. Visibility rules live here, not in the transport layer.
type ProjectService struct {
	repo ports.ProjectRepository
}

func NewProjectService(repo ports.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context, sess domain.Session) ([]domain.Project, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if sess.Role == domain.RoleOwner || sess.Role == domain.RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByOwner(ctx, sess.SubjectID)
}

func (s *ProjectService) Create(ctx context.Context, sess domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		OwnerID:     sess.SubjectID,
		Status:      domain.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.repo.Insert(ctx, project)
}
