// internal/domain/models/sharedlink.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shared-link access levels, ordered weakest to strongest.
// "view" and "download" rank equal; "read" and "write" are accepted as
// aliases left behind by older clients.
const (
	ShareAccessView     = "view"
	ShareAccessDownload = "download"
	ShareAccessEdit     = "edit"
	ShareAccessAdmin    = "admin"

	// Stored rows from older clients; rank as view and edit. New links
	// are validated against the four labels above only.
	ShareAccessLegacyRead  = "read"
	ShareAccessLegacyWrite = "write"
)

// SharedLink is a time-bounded grant addressed to an email or a user id.
// A link counts toward authorization only while IsActive is true and
// ExpiresAt is unset or strictly in the future.
type SharedLink struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DocumentID   primitive.ObjectID  `bson:"document_id" json:"document_id"`
	TargetEmail  string              `bson:"target_email,omitempty" json:"target_email,omitempty"`
	TargetUserID *primitive.ObjectID `bson:"target_user_id,omitempty" json:"target_user_id,omitempty"`
	AccessLevel  string              `bson:"access_level" json:"access_level"` // view | download | edit | admin
	Token        string              `bson:"token" json:"token"`
	ExpiresAt    *time.Time          `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	IsActive     bool                `bson:"is_active" json:"is_active"`
	CreatedBy    primitive.ObjectID  `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Expired reports whether the link's expiry has passed at the given
// instant. Links without an expiry never expire.
func (l SharedLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}
