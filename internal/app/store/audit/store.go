// internal/app/store/audit/store.go
package auditstore

import (
	"context"
	"time"

	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Append records one audit event. Failures are the caller's business to
// log; audit writes must never block the mutation they describe.
func (s *Store) Append(ctx context.Context, ev models.AuditEvent) error {
	ev.ID = primitive.NewObjectID()
	ev.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, ev)
	return err
}

// ListByTarget returns the most recent events for a target entity,
// newest first.
func (s *Store) ListByTarget(ctx context.Context, target string, limit int64) ([]models.AuditEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"target": target}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.AuditEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
