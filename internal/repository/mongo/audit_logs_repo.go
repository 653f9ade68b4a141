package mongo

import (
	"context"
	"time"

	"github.com/baharkarakas/projectify-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type auditLogsRepo struct{ c *mongo.Collection }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	_, err := r.c.InsertOne(ctx, bson.M{
		"entityType": l.EntityType,
		"entityId":   l.EntityID,
		"action":     l.Action,
		"details":    l.Details,
		"createdAt":  time.Now().UTC(),
	})
	return mapErr(err)
}
