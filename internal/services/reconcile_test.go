package services

import (
	"context"
	"testing"

	"github.com/baharkarakas/projectify-backend/internal/apperr"
	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportKey(userID, projectID string, weekNo, year int) repo.ReportFilter {
	return repo.ReportFilter{UserID: userID, ProjectID: projectID, WeekNumber: weekNo, Year: year}
}

func TestReconcile_RepairsReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	raw := f.store.Store.Repos()
	stale := f.newProject(t, "gemini")

	// A report that made it to the store without its associations, and
	// references left behind by a write that never completed.
	r, err := raw.Reports.Create(ctx, models.Report{UserID: f.user.ID, ProjectID: f.project.ID, WeekNumber: 5, Year: 2026, Hours: 3})
	require.NoError(t, err)
	dangling := models.NewID()
	u := f.user
	u.Reports = []string{dangling}
	u.Projects = []string{stale.ID}
	require.NoError(t, raw.Users.Update(ctx, u))
	stale.Users = []string{f.user.ID}
	stale.Reports = []string{dangling}
	require.NoError(t, raw.Projects.Update(ctx, stale))

	got, err := f.svc.Reconcile(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, got.Reports)
	assert.Equal(t, []string{f.project.ID}, got.Projects)

	p, err := raw.Projects.GetByID(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.user.ID}, p.Users)
	assert.Equal(t, []string{r.ID}, p.Reports)

	s, err := raw.Projects.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Users)
	assert.Empty(t, s.Reports)

	again, err := f.svc.Reconcile(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Reports, again.Reports)
	assert.Equal(t, got.Projects, again.Projects)
}

func TestReconcile_UnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reconcile(context.Background(), models.NewID())
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
	_, err = f.svc.Reconcile(context.Background(), "")
	assert.Equal(t, apperr.KindBadRequest, kindOf(t, err))
}

func TestAppendUnique(t *testing.T) {
	ids := appendUnique(nil, "a")
	ids = appendUnique(ids, "b")
	ids = appendUnique(ids, "a")
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, []string{"b"}, removeID(ids, "a"))
	assert.Equal(t, []string{"a", "b"}, ids)
}
