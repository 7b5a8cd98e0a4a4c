// internal/app/features/groups/handler.go
package groups

import (
	"go.uber.org/zap"

	groupstore "github.com/quangphamai/mindmapnote/internal/app/store/groups"
	membershipstore "github.com/quangphamai/mindmapnote/internal/app/store/memberships"
	userstore "github.com/quangphamai/mindmapnote/internal/app/store/users"
	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
)

// Handler is the shared dependency container for the groups feature:
// group CRUD plus the membership lifecycle (join, leave, role changes).
type Handler struct {
	Groups      *groupstore.Store
	Memberships *membershipstore.Store
	Users       *userstore.Store
	Audit       *auditlog.Logger
	Log         *zap.Logger
}

// NewHandler constructs the groups Handler. Called from bootstrap
// BuildHandler.
func NewHandler(
	groups *groupstore.Store,
	memberships *membershipstore.Store,
	users *userstore.Store,
	audit *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Groups:      groups,
		Memberships: memberships,
		Users:       users,
		Audit:       audit,
		Log:         logger,
	}
}
