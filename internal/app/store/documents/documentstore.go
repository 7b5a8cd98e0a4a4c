// internal/app/store/documents/documentstore.go
package documentstore

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
	return &Store{c: db.Collection("documents")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var d models.Document
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Document{}, err
	}
	return d, nil
}

func (s *Store) Create(ctx context.Context, d models.Document) (models.Document, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Document{}, err
	}
	return d, nil
}

// UpdateContent replaces the title and body. The owner and primary group
// are not touched here; ownership is immutable and the primary group has
// its own setter.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, title, body string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":      title,
		"body":       body,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetPrimaryGroup assigns or clears the document's primary group.
// Passing nil clears it.
func (s *Store) SetPrimaryGroup(ctx context.Context, id primitive.ObjectID, groupID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if groupID == nil {
		update["$unset"] = bson.M{"primary_group_id": ""}
	} else {
		update["$set"].(bson.M)["primary_group_id"] = *groupID
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// Delete removes a document by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByOwner returns the caller's own documents, most recently updated
// first.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListByPrimaryGroups returns the documents whose primary group is one
// of the given groups. The primary group is an implicit write-level
// link with no row in group_document_links, so accessible-to-me
// listings query it here.
func (s *Store) ListByPrimaryGroups(ctx context.Context, groupIDs []primitive.ObjectID) ([]models.Document, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"primary_group_id": bson.M{"$in": groupIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListByIDs returns the documents with the given IDs. Used to hydrate
// "accessible to me" listings built from grant rows.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
