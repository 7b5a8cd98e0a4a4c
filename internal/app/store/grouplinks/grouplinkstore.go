// internal/app/store/grouplinks/grouplinkstore.go
package grouplinkstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/quangphamai/mindmapnote/internal/app/store/storeerr"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_document_links")}
}

var (
	ErrBadAccessLevel = errors.New(`access level must be "read", "write", or "admin"`)

	ErrDuplicateLink = errors.New("document is already linked to this group")
)

// Add links a document into a group at the given access level.
func (s *Store) Add(ctx context.Context, link models.GroupDocumentLink) (models.GroupDocumentLink, error) {
	switch link.AccessLevel {
	case models.LinkAccessRead, models.LinkAccessWrite, models.LinkAccessAdmin:
	default:
		return models.GroupDocumentLink{}, ErrBadAccessLevel
	}

	link.ID = primitive.NewObjectID()
	link.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, link); err != nil {
		if wafflemongo.IsDup(err) {
			return models.GroupDocumentLink{}, ErrDuplicateLink
		}
		return models.GroupDocumentLink{}, err
	}
	return link, nil
}

// Remove unlinks a document from a group. Returns the number of links
// removed (0 or 1).
func (s *Store) Remove(ctx context.Context, groupID, documentID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"group_id": groupID, "document_id": documentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByDocument returns every group link for a document. A missing
// collection reads as an unprovisioned grant source.
func (s *Store) ListByDocument(ctx context.Context, documentID primitive.ObjectID) ([]models.GroupDocumentLink, error) {
	cur, err := s.c.Find(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return nil, storeerr.Classify("group links", err)
	}
	defer cur.Close(ctx)

	var links []models.GroupDocumentLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, storeerr.Classify("group links", err)
	}
	return links, nil
}

// ListByGroups returns every link into any of the given groups. Used
// for "accessible to me" listings; empty input returns nothing without
// querying.
func (s *Store) ListByGroups(ctx context.Context, groupIDs []primitive.ObjectID) ([]models.GroupDocumentLink, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"group_id": bson.M{"$in": groupIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.GroupDocumentLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// RemoveByDocument deletes every link for a document. Called when the
// document itself is deleted.
func (s *Store) RemoveByDocument(ctx context.Context, documentID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByGroup returns every document linked into a group.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupDocumentLink, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.GroupDocumentLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}
