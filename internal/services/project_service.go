package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/baharkarakas/projectify-backend/internal/apperr"
	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
)

const (
	msgProjectNameRequired = "Project name is required"
	msgProjectNameTaken    = "Project name already exists"
)

type ProjectService struct {
	r   repo.Projects
	log *slog.Logger
}

func NewProjectService(r repo.Projects, log *slog.Logger) *ProjectService {
	if log == nil {
		log = slog.Default()
	}
	return &ProjectService{r: r, log: log}
}

func (s *ProjectService) Create(ctx context.Context, name string, description *string) (models.Project, error) {
	p := models.Project{Name: strings.TrimSpace(name), Description: description}
	if p.Name == "" {
		return models.Project{}, apperr.BadRequest(msgProjectNameRequired)
	}
	if err := p.Validate(); err != nil {
		return models.Project{}, apperr.BadRequest(err.Error())
	}
	created, err := s.r.Create(ctx, p)
	if errors.Is(err, repo.ErrDuplicate) {
		return models.Project{}, apperr.Conflict(msgProjectNameTaken)
	}
	if err != nil {
		return models.Project{}, apperr.Internal(msgDatabaseError, err)
	}
	s.log.InfoContext(ctx, "project created", "project_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	ps, err := s.r.List(ctx)
	if err != nil {
		return nil, apperr.Internal(msgDatabaseError, err)
	}
	if ps == nil {
		ps = []models.Project{}
	}
	return ps, nil
}
