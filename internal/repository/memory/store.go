// Package memory is a process-local entity store. It backs development runs
// and tests; data is lost on exit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
)

type state struct {
	users    map[string]models.User
	projects map[string]models.Project
	reports  map[string]models.Report
	audit    []models.AuditLog
}

func (st state) clone() state {
	out := state{
		users:    make(map[string]models.User, len(st.users)),
		projects: make(map[string]models.Project, len(st.projects)),
		reports:  make(map[string]models.Report, len(st.reports)),
		audit:    append([]models.AuditLog(nil), st.audit...),
	}
	for k, v := range st.users {
		out.users[k] = cloneUser(v)
	}
	for k, v := range st.projects {
		out.projects[k] = cloneProject(v)
	}
	for k, v := range st.reports {
		out.reports[k] = v
	}
	return out
}

// Store keeps every entity in maps guarded by one mutex. A WithTx unit holds
// the mutex for its whole duration and is rolled back from a snapshot when fn
// fails.
type Store struct {
	mu  sync.Mutex
	st  state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		st: state{
			users:    map[string]models.User{},
			projects: map[string]models.Project{},
			reports:  map[string]models.Report{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) repos(tx bool) repo.Repositories {
	return repo.Repositories{
		Users:     &usersRepo{s: s, tx: tx},
		Projects:  &projectsRepo{s: s, tx: tx},
		Reports:   &reportsRepo{s: s, tx: tx},
		AuditLogs: &auditLogsRepo{s: s, tx: tx},
	}
}

func (s *Store) Repos() repo.Repositories { return s.repos(false) }

func (s *Store) WithTx(ctx context.Context, fn func(context.Context, repo.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) Close(context.Context) error { return nil }

// AuditLogs returns a copy of the recorded audit entries.
func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.st.audit...)
}

// guard locks the store unless the caller already runs inside WithTx.
func (s *Store) guard(tx bool) func() {
	if tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return append([]string{}, ids...)
}

func cloneUser(u models.User) models.User {
	u.Projects = cloneIDs(u.Projects)
	u.Reports = cloneIDs(u.Reports)
	return u
}

func cloneProject(p models.Project) models.Project {
	p.Users = cloneIDs(p.Users)
	p.Reports = cloneIDs(p.Reports)
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	return p
}

type usersRepo struct {
	s  *Store
	tx bool
}

func (r *usersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	defer r.s.guard(r.tx)()
	if u.ID == "" {
		u.ID = models.NewID()
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	for _, existing := range r.s.st.users {
		if existing.Username == u.Username || existing.ID == u.ID {
			return models.User{}, repo.ErrDuplicate
		}
	}
	u.CreatedAt = r.s.now()
	r.s.st.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *usersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	defer r.s.guard(r.tx)()
	u, ok := r.s.st.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *usersRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	defer r.s.guard(r.tx)()
	for _, u := range r.s.st.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (r *usersRepo) Update(_ context.Context, u models.User) error {
	defer r.s.guard(r.tx)()
	cur, ok := r.s.st.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Username = u.Username
	cur.Projects = cloneIDs(u.Projects)
	cur.Reports = cloneIDs(u.Reports)
	r.s.st.users[u.ID] = cur
	return nil
}

type projectsRepo struct {
	s  *Store
	tx bool
}

func (r *projectsRepo) Create(_ context.Context, p models.Project) (models.Project, error) {
	defer r.s.guard(r.tx)()
	if p.ID == "" {
		p.ID = models.NewID()
	}
	if err := p.Validate(); err != nil {
		return models.Project{}, err
	}
	for _, existing := range r.s.st.projects {
		if existing.Name == p.Name || existing.ID == p.ID {
			return models.Project{}, repo.ErrDuplicate
		}
	}
	p.CreatedAt = r.s.now()
	r.s.st.projects[p.ID] = cloneProject(p)
	return cloneProject(p), nil
}

func (r *projectsRepo) GetByID(_ context.Context, id string) (models.Project, error) {
	defer r.s.guard(r.tx)()
	p, ok := r.s.st.projects[id]
	if !ok {
		return models.Project{}, repo.ErrNotFound
	}
	return cloneProject(p), nil
}

func (r *projectsRepo) List(context.Context) ([]models.Project, error) {
	defer r.s.guard(r.tx)()
	out := make([]models.Project, 0, len(r.s.st.projects))
	for _, p := range r.s.st.projects {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *projectsRepo) Update(_ context.Context, p models.Project) error {
	defer r.s.guard(r.tx)()
	cur, ok := r.s.st.projects[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	r.s.st.projects[p.ID] = cloneProject(p)
	return nil
}

type reportsRepo struct {
	s  *Store
	tx bool
}

func matches(rp models.Report, f repo.ReportFilter) bool {
	if rp.UserID != f.UserID || rp.WeekNumber != f.WeekNumber || rp.Year != f.Year {
		return false
	}
	return f.ProjectID == "" || rp.ProjectID == f.ProjectID
}

func sortReports(out []models.Report) {
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber < b.WeekNumber
		}
		return a.ID < b.ID
	})
}

func (r *reportsRepo) Create(_ context.Context, rp models.Report) (models.Report, error) {
	defer r.s.guard(r.tx)()
	if rp.ID == "" {
		rp.ID = models.NewID()
	}
	key := repo.ReportFilter{UserID: rp.UserID, ProjectID: rp.ProjectID, WeekNumber: rp.WeekNumber, Year: rp.Year}
	for _, existing := range r.s.st.reports {
		if existing.ID == rp.ID || matches(existing, key) {
			return models.Report{}, repo.ErrDuplicate
		}
	}
	rp.CreatedAt = r.s.now()
	rp.UpdatedAt = rp.CreatedAt
	r.s.st.reports[rp.ID] = rp
	return rp, nil
}

func (r *reportsRepo) GetByID(_ context.Context, id string) (models.Report, error) {
	defer r.s.guard(r.tx)()
	rp, ok := r.s.st.reports[id]
	if !ok {
		return models.Report{}, repo.ErrNotFound
	}
	return rp, nil
}

func (r *reportsRepo) filter(keep func(models.Report) bool) []models.Report {
	out := []models.Report{}
	for _, rp := range r.s.st.reports {
		if keep(rp) {
			out = append(out, rp)
		}
	}
	sortReports(out)
	return out
}

func (r *reportsRepo) FindOne(_ context.Context, f repo.ReportFilter) (models.Report, error) {
	defer r.s.guard(r.tx)()
	found := r.filter(func(rp models.Report) bool { return matches(rp, f) })
	if len(found) == 0 {
		return models.Report{}, repo.ErrNotFound
	}
	return found[0], nil
}

func (r *reportsRepo) Find(_ context.Context, f repo.ReportFilter) ([]models.Report, error) {
	defer r.s.guard(r.tx)()
	return r.filter(func(rp models.Report) bool { return matches(rp, f) }), nil
}

func (r *reportsRepo) ListByIDs(_ context.Context, ids []string) ([]models.Report, error) {
	defer r.s.guard(r.tx)()
	out := make([]models.Report, 0, len(ids))
	for _, id := range ids {
		if rp, ok := r.s.st.reports[id]; ok {
			out = append(out, rp)
		}
	}
	return out, nil
}

func (r *reportsRepo) ListByUser(_ context.Context, userID string) ([]models.Report, error) {
	defer r.s.guard(r.tx)()
	return r.filter(func(rp models.Report) bool { return rp.UserID == userID }), nil
}

func (r *reportsRepo) UpdateHours(_ context.Context, id string, hours float64) error {
	defer r.s.guard(r.tx)()
	rp, ok := r.s.st.reports[id]
	if !ok {
		return repo.ErrNotFound
	}
	rp.Hours = hours
	rp.UpdatedAt = r.s.now()
	r.s.st.reports[id] = rp
	return nil
}

type auditLogsRepo struct {
	s  *Store
	tx bool
}

func (r *auditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	defer r.s.guard(r.tx)()
	l.CreatedAt = r.s.now()
	r.s.st.audit = append(r.s.st.audit, l)
	return nil
}
