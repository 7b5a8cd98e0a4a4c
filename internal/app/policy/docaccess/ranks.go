// internal/app/policy/docaccess/ranks.go
package docaccess

import "github.com/quangphamai/mindmapnote/internal/domain/models"

// Action is what the caller wants to do with a document. It is supplied
// per request by the route, never stored.
type Action string

const (
	ActionView     Action = "view"
	ActionDownload Action = "download"
	ActionEdit     Action = "edit"
	ActionAdmin    Action = "admin"
)

// Ranks maps the qualitative labels of the five grant vocabularies onto
// comparable integers. A label that is sufficient for an action is
// sufficient for every action of equal or lower rank.
//
// Ranks is immutable: built once by DefaultRanks at startup and injected
// into the engine. Lookups are total functions; an unknown label ranks 0
// and therefore never satisfies any action (fail closed).
type Ranks struct {
	memberRole     map[string]int
	groupLink      map[string]int
	aclRole        map[string]int
	shareAccess    map[string]int
	requiredAction map[Action]int
}

// DefaultRanks builds the rank tables. "view" and "download" rank equal
// on the required-action scale; the share vocabulary additionally accepts
// the legacy "read"/"write" labels as aliases of view/edit.
func DefaultRanks() *Ranks {
	return &Ranks{
		memberRole: map[string]int{
			models.RoleViewer: 1,
			models.RoleMember: 2,
			models.RoleAdmin:  3,
			models.RoleOwner:  4,
		},
		groupLink: map[string]int{
			models.LinkAccessRead:  1,
			models.LinkAccessWrite: 2,
			models.LinkAccessAdmin: 3,
		},
		aclRole: map[string]int{
			models.ACLRoleView:  1,
			models.ACLRoleEdit:  2,
			models.ACLRoleAdmin: 3,
		},
		shareAccess: map[string]int{
			models.ShareAccessView:        1,
			models.ShareAccessDownload:    1,
			models.ShareAccessLegacyRead:  1,
			models.ShareAccessEdit:        2,
			models.ShareAccessLegacyWrite: 2,
			models.ShareAccessAdmin:       3,
		},
		requiredAction: map[Action]int{
			ActionView:     1,
			ActionDownload: 1,
			ActionEdit:     2,
			ActionAdmin:    3,
		},
	}
}

// MemberRole ranks a membership role label.
func (r *Ranks) MemberRole(label string) int { return r.memberRole[label] }

// GroupLink ranks a group-link access level.
func (r *Ranks) GroupLink(label string) int { return r.groupLink[label] }

// ACLRole ranks a direct-ACL role.
func (r *Ranks) ACLRole(label string) int { return r.aclRole[label] }

// ShareAccess ranks a shared-link access level.
func (r *Ranks) ShareAccess(label string) int { return r.shareAccess[label] }

// RequiredAction ranks the action the caller asked for. Unknown actions
// rank 0; the engine rejects them before consulting any grant source.
func (r *Ranks) RequiredAction(a Action) int { return r.requiredAction[a] }

// MinimumRole is the membership-role floor the group-grant path demands
// for an action. It mirrors the required-action scale: view and download
// admit viewers, edit demands at least member, admin demands admin.
func (r *Ranks) MinimumRole(a Action) int { return r.requiredAction[a] }
