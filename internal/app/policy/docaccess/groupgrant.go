// internal/app/policy/docaccess/groupgrant.go
package docaccess

import (
	"context"

	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// groupGrantResolver combines a document's group links with the caller's
// membership roles. A candidate passes only when both hold:
//
//   - the link's access level ranks at least the action, and
//   - the caller's membership role ranks at least the action's minimum
//     role (viewers can view, members can edit, admins can administer).
//
// The primary group, when set, is an implicit candidate at level
// "write".
type groupGrantResolver struct {
	ranks       *Ranks
	memberships MembershipSource
	links       LinkSource
}

func (g *groupGrantResolver) name() string { return "group grants" }

func (g *groupGrantResolver) resolve(ctx context.Context, p Principal, doc models.Document, action Action) (bool, error) {
	type candidate struct {
		groupID primitive.ObjectID
		level   string
	}

	var candidates []candidate
	if doc.PrimaryGroupID != nil {
		candidates = append(candidates, candidate{*doc.PrimaryGroupID, models.LinkAccessWrite})
	}

	links, err := g.links.ListByDocument(ctx, doc.ID)
	if err != nil {
		return false, err
	}
	for _, l := range links {
		candidates = append(candidates, candidate{l.GroupID, l.AccessLevel})
	}
	if len(candidates) == 0 {
		return false, nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(candidates))
	groupIDs := make([]primitive.ObjectID, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.groupID]; dup {
			continue
		}
		seen[c.groupID] = struct{}{}
		groupIDs = append(groupIDs, c.groupID)
	}

	roles, err := g.memberships.ActiveMemberships(ctx, p.UserID, groupIDs)
	if err != nil {
		return false, err
	}

	need := g.ranks.RequiredAction(action)
	minRole := g.ranks.MinimumRole(action)
	for _, c := range candidates {
		role, member := roles[c.groupID]
		if !member {
			continue
		}
		if g.ranks.GroupLink(c.level) >= need && g.ranks.MemberRole(role) >= minRole {
			return true, nil
		}
	}
	return false, nil
}
