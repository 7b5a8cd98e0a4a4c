// internal/app/store/sharedlinks/sharedlinkstore.go
package sharedlinkstore

import (
	"context"
	"errors"
	"time"

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
	return &Store{c: db.Collection("shared_links")}
}

var ErrBadAccessLevel = errors.New(`access level must be "view", "download", "edit", or "admin"`)

// ErrNoTarget is returned when a link names neither an email nor a user.
var ErrNoTarget = errors.New("shared link needs a target email or user id")

// Create stores a new shared link. The caller supplies the token and the
// optional expiry; the store assigns the ID and timestamps and marks the
// link active.
func (s *Store) Create(ctx context.Context, link models.SharedLink) (models.SharedLink, error) {
	switch link.AccessLevel {
	case models.ShareAccessView, models.ShareAccessDownload, models.ShareAccessEdit, models.ShareAccessAdmin:
	default:
		return models.SharedLink{}, ErrBadAccessLevel
	}
	if link.TargetEmail == "" && link.TargetUserID == nil {
		return models.SharedLink{}, ErrNoTarget
	}

	link.ID = primitive.NewObjectID()
	link.IsActive = true
	link.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, link); err != nil {
		return models.SharedLink{}, err
	}
	return link, nil
}

// Revoke deactivates a link. The row is kept so revocation shows up in
// listings; it stops counting toward authorization immediately.
func (s *Store) Revoke(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetActiveByToken resolves a share token to its link. Revoked tokens
// read as not found; expiry is checked by the caller against its own
// clock.
func (s *Store) GetActiveByToken(ctx context.Context, token string) (models.SharedLink, error) {
	var link models.SharedLink
	err := s.c.FindOne(ctx, bson.M{"token": token, "is_active": true}).Decode(&link)
	if err != nil {
		return models.SharedLink{}, err
	}
	return link, nil
}

// ListByDocument returns all links for a document, active or not.
func (s *Store) ListByDocument(ctx context.Context, documentID primitive.ObjectID) ([]models.SharedLink, error) {
	cur, err := s.c.Find(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.SharedLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// RemoveByDocument deletes every link for a document. Called when the
// document itself is deleted; ordinary revocation keeps the row.
func (s *Store) RemoveByDocument(ctx context.Context, documentID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListActiveForRecipient returns active links addressed to the given
// email or user id across all documents. Used for "accessible to me"
// listings; expired rows are filtered by the caller.
func (s *Store) ListActiveForRecipient(ctx context.Context, email string, userID primitive.ObjectID) ([]models.SharedLink, error) {
	targets := bson.A{}
	if email != "" {
		targets = append(targets, bson.M{"target_email": email})
	}
	if userID != primitive.NilObjectID {
		targets = append(targets, bson.M{"target_user_id": userID})
	}
	if len(targets) == 0 {
		return nil, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"is_active": true, "$or": targets})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.SharedLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// ListActiveForTarget returns the document's active links addressed to
// the given email or user id. Expired rows are still returned; the
// resolver discards them against its own notion of "now". A missing
// collection reads as an unprovisioned grant source.
func (s *Store) ListActiveForTarget(ctx context.Context, documentID primitive.ObjectID, email string, userID primitive.ObjectID) ([]models.SharedLink, error) {
	targets := bson.A{}
	if email != "" {
		targets = append(targets, bson.M{"target_email": email})
	}
	if userID != primitive.NilObjectID {
		targets = append(targets, bson.M{"target_user_id": userID})
	}
	if len(targets) == 0 {
		return nil, nil
	}

	cur, err := s.c.Find(ctx, bson.M{
		"document_id": documentID,
		"is_active":   true,
		"$or":         targets,
	})
	if err != nil {
		return nil, storeerr.Classify("shared links", err)
	}
	defer cur.Close(ctx)

	var links []models.SharedLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, storeerr.Classify("shared links", err)
	}
	return links, nil
}
