// internal/domain/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a mind-map document owned by the user who created it.
//
// NOTE:
//   - OwnerID is immutable for authorization purposes: the creator keeps
//     full access to the document for its whole lifetime.
//   - PrimaryGroupID is optional. When set, it behaves like an implicit
//     group link at the "write" access level; additional groups are
//     attached through the group_document_links collection.
type Document struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	Body           string              `bson:"body" json:"body"`
	OwnerID        primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	PrimaryGroupID *primitive.ObjectID `bson:"primary_group_id,omitempty" json:"primary_group_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
