package mongo

import (
	"context"
	"time"

	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDoc struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Username  string               `bson:"username"`
	Password  string               `bson:"password"`
	Projects  []primitive.ObjectID `bson:"projects"`
	Reports   []primitive.ObjectID `bson:"reports"`
	CreatedAt time.Time            `bson:"createdAt"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
		Projects:     hexIDs(d.Projects),
		Reports:      hexIDs(d.Reports),
		CreatedAt:    d.CreatedAt,
	}
}

type usersRepo struct{ c *mongo.Collection }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = models.NewID()
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return models.User{}, err
	}
	projects, err := objectIDs(u.Projects)
	if err != nil {
		return models.User{}, err
	}
	reports, err := objectIDs(u.Reports)
	if err != nil {
		return models.User{}, err
	}
	doc := userDoc{
		ID:        oid,
		Username:  u.Username,
		Password:  u.PasswordHash,
		Projects:  projects,
		Reports:   reports,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return models.User{}, mapErr(err)
	}
	return doc.model(), nil
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var doc userDoc
	if err := r.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.User{}, mapErr(err)
	}
	return doc.model(), nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	oid, err := objectID(u.ID)
	if err != nil {
		return err
	}
	projects, err := objectIDs(u.Projects)
	if err != nil {
		return err
	}
	reports, err := objectIDs(u.Reports)
	if err != nil {
		return err
	}
	res, err := r.c.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"username": u.Username,
		"projects": projects,
		"reports":  reports,
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
