// internal/domain/models/groupdocumentlink.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group-link access levels, ordered weakest to strongest.
const (
	LinkAccessRead  = "read"
	LinkAccessWrite = "write"
	LinkAccessAdmin = "admin"
)

// GroupDocumentLink shares a document into a group at a given access
// level. Many-to-many: one document can be linked into several groups
// beyond its primary group. Unique per (group_id, document_id).
type GroupDocumentLink struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID     primitive.ObjectID `bson:"group_id" json:"group_id"`
	DocumentID  primitive.ObjectID `bson:"document_id" json:"document_id"`
	AccessLevel string             `bson:"access_level" json:"access_level"` // read | write | admin
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
