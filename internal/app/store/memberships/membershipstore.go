// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_memberships")}
}

var ErrBadRole = errors.New(`role must be "viewer", "member", "admin", or "owner"`)

var (
	ErrDuplicateMembership = errors.New("user is already an active member of this group")
	ErrNoMembership        = errors.New("user has no membership in this group")
)

func validRole(role string) bool {
	switch role {
	case models.RoleViewer, models.RoleMember, models.RoleAdmin, models.RoleOwner:
		return true
	}
	return false
}

// Add creates a membership, or reactivates a soft-deleted one. Rejoining
// keeps the original document so the (group, user) pair stays unique and
// the audit trail unbroken. Adding over an active membership returns
// ErrDuplicateMembership.
func (s *Store) Add(ctx context.Context, groupID, userID primitive.ObjectID, role string) error {
	if !validRole(role) {
		return ErrBadRole
	}

	var existing models.GroupMembership
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "user_id": userID}).Decode(&existing)
	switch {
	case err == mongo.ErrNoDocuments:
		doc := models.GroupMembership{
			GroupID:   groupID,
			UserID:    userID,
			Role:      role,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		doc.ID = primitive.NewObjectID()
		if _, err := s.c.InsertOne(ctx, doc); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateMembership
			}
			return err
		}
		return nil
	case err != nil:
		return err
	}

	if existing.IsActive {
		return ErrDuplicateMembership
	}
	_, err = s.c.UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{
		"role":       role,
		"is_active":  true,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Deactivate soft-deletes a membership. The document is kept with
// is_active=false; it never counts toward authorization again unless the
// user rejoins.
func (s *Store) Deactivate(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"group_id": groupID, "user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoMembership
	}
	return nil
}

// SetRole changes the role of an active membership.
func (s *Store) SetRole(ctx context.Context, groupID, userID primitive.ObjectID, role string) error {
	if !validRole(role) {
		return ErrBadRole
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"group_id": groupID, "user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoMembership
	}
	return nil
}

// ActiveMemberships returns the user's active role in each of the given
// groups. Groups the user is not an active member of are absent from the
// result. An empty groupIDs slice returns an empty map without querying.
func (s *Store) ActiveMemberships(ctx context.Context, userID primitive.ObjectID, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	roles := make(map[primitive.ObjectID]string)
	if len(groupIDs) == 0 {
		return roles, nil
	}

	cur, err := s.c.Find(ctx, bson.M{
		"user_id":   userID,
		"group_id":  bson.M{"$in": groupIDs},
		"is_active": true,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var m models.GroupMembership
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		roles[m.GroupID] = m.Role
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// ListByGroup returns memberships for a group. With activeOnly set,
// soft-deleted rows are excluded.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID, activeOnly bool) ([]models.GroupMembership, error) {
	filter := bson.M{"group_id": groupID}
	if activeOnly {
		filter["is_active"] = true
	}
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.GroupMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListActiveByUser returns all groups the user is an active member of.
func (s *Store) ListActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]models.GroupMembership, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.GroupMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}
