// internal/app/policy/docaccess/acl.go
package docaccess

import (
	"context"

	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// aclResolver evaluates a document's direct allow-list. A user-subject
// entry for the caller is checked first; group-subject entries are then
// joined against the caller's active memberships.
//
// Group-subject entries carry no membership-role floor: a viewer in the
// group picks up the entry's full role. That is looser than the
// group-grant path; the entry names the group itself as the trusted
// subject, and any active membership is enough to stand in for it.
type aclResolver struct {
	ranks       *Ranks
	memberships MembershipSource
	entries     ACLSource
}

func (a *aclResolver) name() string { return "document acl" }

func (a *aclResolver) resolve(ctx context.Context, p Principal, doc models.Document, action Action) (bool, error) {
	entries, err := a.entries.ListByDocument(ctx, doc.ID)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, nil
	}

	need := a.ranks.RequiredAction(action)

	var groupEntries []models.DocumentACLEntry
	for _, entry := range entries {
		switch entry.SubjectType {
		case models.ACLSubjectUser:
			if entry.SubjectID == p.UserID && a.ranks.ACLRole(entry.Role) >= need {
				return true, nil
			}
		case models.ACLSubjectGroup:
			groupEntries = append(groupEntries, entry)
		}
	}
	if len(groupEntries) == 0 {
		return false, nil
	}

	groupIDs := make([]primitive.ObjectID, 0, len(groupEntries))
	for _, entry := range groupEntries {
		groupIDs = append(groupIDs, entry.SubjectID)
	}
	roles, err := a.memberships.ActiveMemberships(ctx, p.UserID, groupIDs)
	if err != nil {
		return false, err
	}

	for _, entry := range groupEntries {
		if _, member := roles[entry.SubjectID]; member && a.ranks.ACLRole(entry.Role) >= need {
			return true, nil
		}
	}
	return false, nil
}
