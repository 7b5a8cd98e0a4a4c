// internal/app/store/aclentries/aclstore.go
package aclstore

import (
	"context"
	"errors"
	"time"

	"github.com/quangphamai/mindmapnote/internal/app/store/storeerr"
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
	return &Store{c: db.Collection("document_acl_entries")}
}

var (
	ErrBadSubjectType = errors.New(`subject type must be "user" or "group"`)
	ErrBadRole        = errors.New(`role must be "view", "edit", or "admin"`)
)

// Upsert creates or updates the allow-list entry for (document, subject).
// Re-granting with a different role overwrites the previous role.
func (s *Store) Upsert(ctx context.Context, entry models.DocumentACLEntry) (models.DocumentACLEntry, error) {
	switch entry.SubjectType {
	case models.ACLSubjectUser, models.ACLSubjectGroup:
	default:
		return models.DocumentACLEntry{}, ErrBadSubjectType
	}
	switch entry.Role {
	case models.ACLRoleView, models.ACLRoleEdit, models.ACLRoleAdmin:
	default:
		return models.DocumentACLEntry{}, ErrBadRole
	}

	filter := bson.M{
		"document_id":  entry.DocumentID,
		"subject_type": entry.SubjectType,
		"subject_id":   entry.SubjectID,
	}
	update := bson.M{
		"$set": bson.M{"role": entry.Role, "created_by": entry.CreatedBy},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.DocumentACLEntry
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return models.DocumentACLEntry{}, err
	}
	return out, nil
}

// Remove deletes the entry for (document, subject). Returns the number
// of entries removed (0 or 1).
func (s *Store) Remove(ctx context.Context, documentID primitive.ObjectID, subjectType string, subjectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"document_id":  documentID,
		"subject_type": subjectType,
		"subject_id":   subjectID,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// RemoveByDocument deletes every entry for a document. Called when the
// document itself is deleted.
func (s *Store) RemoveByDocument(ctx context.Context, documentID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByDocument returns every allow-list entry for a document. A
// missing collection reads as an unprovisioned grant source.
func (s *Store) ListByDocument(ctx context.Context, documentID primitive.ObjectID) ([]models.DocumentACLEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return nil, storeerr.Classify("document acl", err)
	}
	defer cur.Close(ctx)

	var entries []models.DocumentACLEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, storeerr.Classify("document acl", err)
	}
	return entries, nil
}

// ListByUserSubject returns ACL entries granted directly to a user,
// across all documents. Used for "accessible to me" listings.
func (s *Store) ListByUserSubject(ctx context.Context, userID primitive.ObjectID) ([]models.DocumentACLEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{"subject_type": models.ACLSubjectUser, "subject_id": userID})
	if err != nil {
		return nil, storeerr.Classify("document acl", err)
	}
	defer cur.Close(ctx)

	var entries []models.DocumentACLEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, storeerr.Classify("document acl", err)
	}
	return entries, nil
}
