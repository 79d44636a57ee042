package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/workbase/console-api/internal/api/middleware"
	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/ports"
)

type stubProjectService struct {
	listFn   func(ctx context.Context, sess domain.Session) ([]domain.Project, error)
	createFn func(ctx context.Context, sess domain.Session, in ports.CreateProjectInput) (*domain.Project, error)
}

func (s *stubProjectService) List(ctx context.Context, sess domain.Session) ([]domain.Project, error) {
	return s.listFn(ctx, sess)
}

func (s *stubProjectService) Create(ctx context.Context, sess domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, sess, in)
}

func TestProjectHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		listFn: func(ctx context.Context, sess domain.Session) ([]domain.Project, error) {
			if sess.SubjectID != "u1" {
				t.Fatalf("unexpected session: %+v", sess)
			}
			return []domain.Project{{ID: "p1", Name: "Atlas", OwnerID: "u1"}}, nil
		},
	}
	h := NewProjectHandler(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, domain.Session{SubjectID: "u1", Role: domain.RoleMember})

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string][]domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["projects"]) != 1 || resp["projects"][0].Name != "Atlas" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProjectHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		listFn: func(ctx context.Context, sess domain.Session) ([]domain.Project, error) {
			return nil, nil
		},
	}
	h := NewProjectHandler(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, domain.Session{SubjectID: "u1", Role: domain.RoleViewer})

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"projects":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestProjectHandler_List_RequiresSession(t *testing.T) {
	e := newTestEcho()
	h := NewProjectHandler(&stubProjectService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.List(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProjectHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, sess domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
			if in.Name != "Atlas" || sess.SubjectID != "u1" {
				t.Fatalf("unexpected args: %+v %+v", sess, in)
			}
			return &domain.Project{ID: "p1", Name: in.Name, OwnerID: sess.SubjectID, Status: domain.ProjectActive}, nil
		},
	}
	h := NewProjectHandler(stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/projects",
		strings.NewReader(`{"name":"Atlas","description":"tooling"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, domain.Session{SubjectID: "u1", Role: domain.RoleMember})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProjectHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, sess domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewProjectHandler(stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"description":"no name"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, domain.Session{SubjectID: "u1", Role: domain.RoleMember})

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
