// internal/domain/models/auditevent.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEvent records a permission-affecting mutation: membership changes,
// ACL edits, share creation and revocation, group links.
type AuditEvent struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID primitive.ObjectID `bson:"actor_id" json:"actor_id"`
	Action  string             `bson:"action" json:"action"` // e.g. "membership.add", "share.revoke"
	Target  string             `bson:"target" json:"target"` // entity id the action applied to
	Detail  string             `bson:"detail,omitempty" json:"detail,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
