// Package mongo stores users, projects and reports as MongoDB documents.
// References are kept as ObjectID arrays on both sides of the
// user/project relation.
package mongo

import (
	"context"
	"errors"
	"fmt"

	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	projectsCollection  = "projects"
	reportsCollection   = "reports"
	auditLogsCollection = "audit_logs"
)

type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

// NewStore binds to database dbName. With transactions disabled WithTx runs
// its units without a session, which standalone servers require.
func NewStore(client *mongo.Client, dbName string, transactions bool) *Store {
	return &Store{client: client, db: client.Database(dbName), transactions: transactions}
}

func (s *Store) Repos() repo.Repositories {
	return repo.Repositories{
		Users:     &usersRepo{c: s.db.Collection(usersCollection)},
		Projects:  &projectsRepo{c: s.db.Collection(projectsCollection)},
		Reports:   &reportsRepo{c: s.db.Collection(reportsCollection)},
		AuditLogs: &auditLogsRepo{c: s.db.Collection(auditLogsCollection)},
	}
}

func (s *Store) WithTx(ctx context.Context, fn func(context.Context, repo.Repositories) error) error {
	if !s.transactions {
		return fn(ctx, s.Repos())
	}
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s.Repos())
	})
	return err
}

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// EnsureIndexes creates the unique indexes backing username, project name and
// the one-report-per-week rule.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		projectsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		reportsCollection: {
			{
				Keys: bson.D{
					{Key: "user", Value: 1},
					{Key: "project", Value: 1},
					{Key: "weekNumber", Value: 1},
					{Key: "year", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("user_project_week_year"),
			},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "weekNumber", Value: 1}, {Key: "year", Value: 1}}},
		},
	}
	for coll, idx := range specs {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("indexes %s: %w", coll, err)
		}
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repo.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repo.ErrDuplicate, err)
	}
	return err
}

// objectID parses a hex id. Malformed ids can never match a document, so they
// surface as ErrNotFound.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repo.ErrNotFound
	}
	return oid, nil
}

func objectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", id, err)
		}
		out = append(out, oid)
	}
	return out, nil
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}
