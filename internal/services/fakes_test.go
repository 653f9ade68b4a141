package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"github.com/baharkarakas/projectify-backend/internal/repository/memory"
)

// recordingStore wraps the memory store and records every repository call.
// failOn makes the named call return failErr instead of reaching the store.
type recordingStore struct {
	*memory.Store

	mu      sync.Mutex
	calls   []string
	failOn  string
	failErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Store: memory.NewStore()}
}

func (s *recordingStore) record(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	if call == s.failOn {
		return s.failErr
	}
	return nil
}

func (s *recordingStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *recordingStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *recordingStore) wrap(r repo.Repositories) repo.Repositories {
	return repo.Repositories{
		Users:     recUsers{s: s, next: r.Users},
		Projects:  recProjects{s: s, next: r.Projects},
		Reports:   recReports{s: s, next: r.Reports},
		AuditLogs: r.AuditLogs,
	}
}

func (s *recordingStore) Repos() repo.Repositories { return s.wrap(s.Store.Repos()) }

func (s *recordingStore) WithTx(ctx context.Context, fn func(context.Context, repo.Repositories) error) error {
	return s.Store.WithTx(ctx, func(ctx context.Context, r repo.Repositories) error {
		return fn(ctx, s.wrap(r))
	})
}

type recUsers struct {
	s    *recordingStore
	next repo.Users
}

func (r recUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	if err := r.s.record("users.Create"); err != nil {
		return models.User{}, err
	}
	return r.next.Create(ctx, u)
}

func (r recUsers) GetByID(ctx context.Context, id string) (models.User, error) {
	if err := r.s.record("users.GetByID"); err != nil {
		return models.User{}, err
	}
	return r.next.GetByID(ctx, id)
}

func (r recUsers) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if err := r.s.record("users.GetByUsername"); err != nil {
		return models.User{}, err
	}
	return r.next.GetByUsername(ctx, username)
}

func (r recUsers) Update(ctx context.Context, u models.User) error {
	if err := r.s.record("users.Update"); err != nil {
		return err
	}
	return r.next.Update(ctx, u)
}

type recProjects struct {
	s    *recordingStore
	next repo.Projects
}

func (r recProjects) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if err := r.s.record("projects.Create"); err != nil {
		return models.Project{}, err
	}
	return r.next.Create(ctx, p)
}

func (r recProjects) GetByID(ctx context.Context, id string) (models.Project, error) {
	if err := r.s.record("projects.GetByID"); err != nil {
		return models.Project{}, err
	}
	return r.next.GetByID(ctx, id)
}

func (r recProjects) List(ctx context.Context) ([]models.Project, error) {
	if err := r.s.record("projects.List"); err != nil {
		return nil, err
	}
	return r.next.List(ctx)
}

func (r recProjects) Update(ctx context.Context, p models.Project) error {
	if err := r.s.record("projects.Update"); err != nil {
		return err
	}
	return r.next.Update(ctx, p)
}

type recReports struct {
	s    *recordingStore
	next repo.Reports
}

func (r recReports) Create(ctx context.Context, rp models.Report) (models.Report, error) {
	if err := r.s.record("reports.Create"); err != nil {
		return models.Report{}, err
	}
	return r.next.Create(ctx, rp)
}

func (r recReports) GetByID(ctx context.Context, id string) (models.Report, error) {
	if err := r.s.record("reports.GetByID"); err != nil {
		return models.Report{}, err
	}
	return r.next.GetByID(ctx, id)
}

func (r recReports) FindOne(ctx context.Context, f repo.ReportFilter) (models.Report, error) {
	if err := r.s.record("reports.FindOne"); err != nil {
		return models.Report{}, err
	}
	return r.next.FindOne(ctx, f)
}

func (r recReports) Find(ctx context.Context, f repo.ReportFilter) ([]models.Report, error) {
	if err := r.s.record("reports.Find"); err != nil {
		return nil, err
	}
	return r.next.Find(ctx, f)
}

func (r recReports) ListByIDs(ctx context.Context, ids []string) ([]models.Report, error) {
	if err := r.s.record("reports.ListByIDs"); err != nil {
		return nil, err
	}
	return r.next.ListByIDs(ctx, ids)
}

func (r recReports) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	if err := r.s.record("reports.ListByUser"); err != nil {
		return nil, err
	}
	return r.next.ListByUser(ctx, userID)
}

func (r recReports) UpdateHours(ctx context.Context, id string, hours float64) error {
	if err := r.s.record("reports.UpdateHours"); err != nil {
		return err
	}
	return r.next.UpdateHours(ctx, id, hours)
}

// mapCache is an in-process cache.Reports that counts lookups. beforeSet,
// when set, runs once ahead of the next Set.
type mapCache struct {
	mu          sync.Mutex
	gens        map[string]int64
	m           map[string][]models.Report
	hits        int
	invalidated []string
	beforeSet   func()
}

func newMapCache() *mapCache {
	return &mapCache{gens: map[string]int64{}, m: map[string][]models.Report{}}
}

func entryKey(userID string, gen int64) string { return fmt.Sprintf("%s:%d", userID, gen) }

func (c *mapCache) Generation(_ context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[userID], nil
}

func (c *mapCache) Get(_ context.Context, userID string, gen int64) ([]models.Report, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[entryKey(userID, gen)]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, userID string, gen int64, reports []models.Report) error {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[entryKey(userID, gen)] = reports
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[userID]++
	c.invalidated = append(c.invalidated, userID)
	return nil
}
