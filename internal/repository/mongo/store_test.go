package mongo

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/baharkarakas/projectify-backend/internal/db"
	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestObjectIDHelpers(t *testing.T) {
	id := models.NewID()
	oid, err := objectID(id)
	require.NoError(t, err)
	assert.Equal(t, id, oid.Hex())

	_, err = objectID("nope")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	oids, err := objectIDs([]string{id})
	require.NoError(t, err)
	assert.Equal(t, []string{id}, hexIDs(oids))

	_, err = objectIDs([]string{"zz"})
	assert.Error(t, err)
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(mongo.ErrNoDocuments), repo.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mapErr(dup), repo.ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, mapErr(other))
}

// TestStore_Roundtrip runs against a real deployment when MONGO_TEST_URI is set.
func TestStore_Roundtrip(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("Skipping MongoDB store test: MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, err := db.NewMongoClient(ctx, uri)
	require.NoError(t, err)

	dbName := "projectify_test_" + models.NewID()
	s := NewStore(client, dbName, false)
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = s.Close(context.Background())
	})
	require.NoError(t, s.EnsureIndexes(ctx))
	r := s.Repos()

	u, err := r.Users.Create(ctx, models.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	p, err := r.Projects.Create(ctx, models.Project{Name: "apollo"})
	require.NoError(t, err)

	rp, err := r.Reports.Create(ctx, models.Report{UserID: u.ID, ProjectID: p.ID, WeekNumber: 1, Hours: 10, Year: 2023})
	require.NoError(t, err)

	_, err = r.Reports.Create(ctx, models.Report{UserID: u.ID, ProjectID: p.ID, WeekNumber: 1, Hours: 3, Year: 2023})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	found, err := r.Reports.FindOne(ctx, repo.ReportFilter{UserID: u.ID, ProjectID: p.ID, WeekNumber: 1, Year: 2023})
	require.NoError(t, err)
	assert.Equal(t, rp.ID, found.ID)

	u.Reports = append(u.Reports, rp.ID)
	u.Projects = append(u.Projects, p.ID)
	require.NoError(t, r.Users.Update(ctx, u))

	got, err := r.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, got.Projects)

	list, err := r.Reports.ListByIDs(ctx, got.Reports)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10.0, list[0].Hours)

	require.NoError(t, r.Reports.UpdateHours(ctx, rp.ID, 12))
	again, err := r.Reports.GetByID(ctx, rp.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, again.Hours)
}
