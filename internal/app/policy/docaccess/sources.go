// internal/app/policy/docaccess/sources.go
package docaccess

import (
	"context"

	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal identifies the caller for one decision: the user id from the
// session plus the email shared links may be addressed to.
type Principal struct {
	UserID primitive.ObjectID
	Email  string
}

// The engine reads grant data through these narrow interfaces. The Mongo
// stores satisfy them; tests swap in in-memory fakes.

// MembershipSource resolves a user's active role in each of a set of
// groups. Groups without an active membership are absent from the map.
// An empty groupIDs slice must return an empty map without querying.
type MembershipSource interface {
	ActiveMemberships(ctx context.Context, userID primitive.ObjectID, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

// LinkSource lists the groups a document has been explicitly linked
// into.
type LinkSource interface {
	ListByDocument(ctx context.Context, documentID primitive.ObjectID) ([]models.GroupDocumentLink, error)
}

// ACLSource lists a document's direct allow-list entries.
type ACLSource interface {
	ListByDocument(ctx context.Context, documentID primitive.ObjectID) ([]models.DocumentACLEntry, error)
}

// ShareSource lists a document's active shared links addressed to the
// given email or user id. Expired rows may be included; the resolver
// filters them against its own clock.
type ShareSource interface {
	ListActiveForTarget(ctx context.Context, documentID primitive.ObjectID, email string, userID primitive.ObjectID) ([]models.SharedLink, error)
}
