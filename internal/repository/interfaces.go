package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/projectify-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	// Update persists the username and the project/report reference sets.
	Update(ctx context.Context, u models.User) error
}

type Projects interface {
	Create(ctx context.Context, p models.Project) (models.Project, error)
	GetByID(ctx context.Context, id string) (models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, p models.Project) error
}

// ReportFilter matches reports by field equality. An empty ProjectID matches
// every project.
type ReportFilter struct {
	UserID     string
	ProjectID  string
	WeekNumber int
	Year       int
}

type Reports interface {
	Create(ctx context.Context, r models.Report) (models.Report, error)
	GetByID(ctx context.Context, id string) (models.Report, error)
	FindOne(ctx context.Context, f ReportFilter) (models.Report, error)
	Find(ctx context.Context, f ReportFilter) ([]models.Report, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Report, error)
	ListByUser(ctx context.Context, userID string) ([]models.Report, error)
	UpdateHours(ctx context.Context, id string, hours float64) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Repositories groups the entity repositories bound to one connection or
// transaction.
type Repositories struct {
	Users     Users
	Projects  Projects
	Reports   Reports
	AuditLogs AuditLogs
}

// Transactor runs fn as a single unit of work. Repositories handed to fn are
// bound to that unit; fn must use the ctx it receives.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}

// Store is an entity store backend.
type Store interface {
	Transactor
	Repos() Repositories
	Close(ctx context.Context) error
}
