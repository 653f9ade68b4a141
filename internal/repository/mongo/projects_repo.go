package mongo

import (
	"context"
	"time"

	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type projectDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description *string              `bson:"description,omitempty"`
	Users       []primitive.ObjectID `bson:"users"`
	Reports     []primitive.ObjectID `bson:"reports"`
	CreatedAt   time.Time            `bson:"createdAt"`
}

func (d projectDoc) model() models.Project {
	return models.Project{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Users:       hexIDs(d.Users),
		Reports:     hexIDs(d.Reports),
		CreatedAt:   d.CreatedAt,
	}
}

type projectsRepo struct{ c *mongo.Collection }

func (r *projectsRepo) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		p.ID = models.NewID()
	}
	if err := p.Validate(); err != nil {
		return models.Project{}, err
	}
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return models.Project{}, err
	}
	users, err := objectIDs(p.Users)
	if err != nil {
		return models.Project{}, err
	}
	reports, err := objectIDs(p.Reports)
	if err != nil {
		return models.Project{}, err
	}
	doc := projectDoc{
		ID:          oid,
		Name:        p.Name,
		Description: p.Description,
		Users:       users,
		Reports:     reports,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return models.Project{}, mapErr(err)
	}
	return doc.model(), nil
}

func (r *projectsRepo) GetByID(ctx context.Context, id string) (models.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Project{}, err
	}
	var doc projectDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.Project{}, mapErr(err)
	}
	return doc.model(), nil
}

func (r *projectsRepo) List(ctx context.Context) ([]models.Project, error) {
	cur, err := r.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *projectsRepo) Update(ctx context.Context, p models.Project) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	users, err := objectIDs(p.Users)
	if err != nil {
		return err
	}
	reports, err := objectIDs(p.Reports)
	if err != nil {
		return err
	}
	res, err := r.c.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"users":       users,
		"reports":     reports,
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
