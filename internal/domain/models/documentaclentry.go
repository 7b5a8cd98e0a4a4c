// internal/domain/models/documentaclentry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ACL subject types.
const (
	ACLSubjectUser  = "user"
	ACLSubjectGroup = "group"
)

// ACL roles, ordered weakest to strongest.
const (
	ACLRoleView  = "view"
	ACLRoleEdit  = "edit"
	ACLRoleAdmin = "admin"
)

// DocumentACLEntry is a per-document allow-list entry keyed by either a
// user or a group subject. Entries are independent of group membership
// and link state. Unique per (document_id, subject_type, subject_id).
type DocumentACLEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentID  primitive.ObjectID `bson:"document_id" json:"document_id"`
	SubjectType string             `bson:"subject_type" json:"subject_type"` // user | group
	SubjectID   primitive.ObjectID `bson:"subject_id" json:"subject_id"`
	Role        string             `bson:"role" json:"role"` // view | edit | admin
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
