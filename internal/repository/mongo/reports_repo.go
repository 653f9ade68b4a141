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

type reportDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	User       primitive.ObjectID `bson:"user"`
	Project    primitive.ObjectID `bson:"project"`
	WeekNumber int                `bson:"weekNumber"`
	Hours      float64            `bson:"hours"`
	Year       int                `bson:"year"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d reportDoc) model() models.Report {
	return models.Report{
		ID:         d.ID.Hex(),
		UserID:     d.User.Hex(),
		ProjectID:  d.Project.Hex(),
		WeekNumber: d.WeekNumber,
		Hours:      d.Hours,
		Year:       d.Year,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type reportsRepo struct{ c *mongo.Collection }

func (r *reportsRepo) Create(ctx context.Context, rp models.Report) (models.Report, error) {
	if rp.ID == "" {
		rp.ID = models.NewID()
	}
	ids, err := objectIDs([]string{rp.ID, rp.UserID, rp.ProjectID})
	if err != nil {
		return models.Report{}, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := reportDoc{
		ID:         ids[0],
		User:       ids[1],
		Project:    ids[2],
		WeekNumber: rp.WeekNumber,
		Hours:      rp.Hours,
		Year:       rp.Year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return models.Report{}, mapErr(err)
	}
	return doc.model(), nil
}

func (r *reportsRepo) GetByID(ctx context.Context, id string) (models.Report, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Report{}, err
	}
	var doc reportDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.Report{}, mapErr(err)
	}
	return doc.model(), nil
}

func reportFilter(f repo.ReportFilter) (bson.M, error) {
	user, err := objectID(f.UserID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"user": user, "weekNumber": f.WeekNumber, "year": f.Year}
	if f.ProjectID != "" {
		project, err := objectID(f.ProjectID)
		if err != nil {
			return nil, err
		}
		filter["project"] = project
	}
	return filter, nil
}

func (r *reportsRepo) FindOne(ctx context.Context, f repo.ReportFilter) (models.Report, error) {
	filter, err := reportFilter(f)
	if err != nil {
		return models.Report{}, err
	}
	var doc reportDoc
	if err := r.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.Report{}, mapErr(err)
	}
	return doc.model(), nil
}

func (r *reportsRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Report, error) {
	cur, err := r.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, mapErr(err)
	}
	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Report, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *reportsRepo) Find(ctx context.Context, f repo.ReportFilter) ([]models.Report, error) {
	filter, err := reportFilter(f)
	if err != nil {
		if err == repo.ErrNotFound {
			return []models.Report{}, nil
		}
		return nil, err
	}
	return r.find(ctx, filter)
}

// ListByIDs resolves report references the way a populate step would: missing
// ids are skipped and the input order is kept.
func (r *reportsRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Report, error) {
	if len(ids) == 0 {
		return []models.Report{}, nil
	}
	oids, err := objectIDs(ids)
	if err != nil {
		return nil, err
	}
	found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Report, len(found))
	for _, rp := range found {
		byID[rp.ID] = rp
	}
	out := make([]models.Report, 0, len(found))
	for _, id := range ids {
		if rp, ok := byID[id]; ok {
			out = append(out, rp)
		}
	}
	return out, nil
}

func (r *reportsRepo) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	user, err := objectID(userID)
	if err != nil {
		return []models.Report{}, nil
	}
	sort := bson.D{{Key: "year", Value: 1}, {Key: "weekNumber", Value: 1}, {Key: "createdAt", Value: 1}}
	return r.find(ctx, bson.M{"user": user}, options.Find().SetSort(sort))
}

func (r *reportsRepo) UpdateHours(ctx context.Context, id string, hours float64) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.c.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"hours":     hours,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
