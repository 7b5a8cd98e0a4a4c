// internal/domain/models/groupmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles, ordered weakest to strongest.
const (
	RoleViewer = "viewer"
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

// GroupMembership is the authoritative join between users and groups.
// Exactly one document per (group_id, user_id).
//
// Removal and leaving are soft deletes: IsActive flips to false and the
// document stays behind for audit history. Only active memberships count
// toward authorization.
type GroupMembership struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role    string             `bson:"role" json:"role"` // viewer | member | admin | owner

	IsActive bool `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
