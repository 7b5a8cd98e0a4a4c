// internal/app/policy/docaccess/owner.go
package docaccess

import (
	"context"

	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ownerResolver grants every action to the document's owner. It needs no
// store access and never fails.
type ownerResolver struct{}

func (ownerResolver) name() string { return "ownership" }

func (ownerResolver) resolve(_ context.Context, p Principal, doc models.Document, _ Action) (bool, error) {
	return doc.OwnerID != primitive.NilObjectID && doc.OwnerID == p.UserID, nil
}
