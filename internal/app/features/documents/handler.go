// internal/app/features/documents/handler.go
package documents

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	aclstore "github.com/quangphamai/mindmapnote/internal/app/store/aclentries"
	documentstore "github.com/quangphamai/mindmapnote/internal/app/store/documents"
	grouplinkstore "github.com/quangphamai/mindmapnote/internal/app/store/grouplinks"
	membershipstore "github.com/quangphamai/mindmapnote/internal/app/store/memberships"
	sharedlinkstore "github.com/quangphamai/mindmapnote/internal/app/store/sharedlinks"
	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
)

// Handler is the shared dependency container for the documents feature:
// document CRUD plus the per-document grant surfaces (ACL entries,
// shared links, group links).
type Handler struct {
	Docs        *documentstore.Store
	ACL         *aclstore.Store
	Shares      *sharedlinkstore.Store
	Links       *grouplinkstore.Store
	Memberships *membershipstore.Store
	Gate        *gates.DocumentGate
	Audit       *auditlog.Logger
	Sanitizer   *bluemonday.Policy

	// BaseURL is prepended to share tokens when minting share URLs.
	BaseURL string

	Log *zap.Logger
}

// NewHandler constructs the documents Handler. Called from bootstrap
// BuildHandler with the app's stores, gate, and logger. Document bodies
// pass through the UGC sanitizer on every write.
func NewHandler(
	docs *documentstore.Store,
	acl *aclstore.Store,
	shares *sharedlinkstore.Store,
	links *grouplinkstore.Store,
	memberships *membershipstore.Store,
	gate *gates.DocumentGate,
	audit *auditlog.Logger,
	baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Docs:        docs,
		ACL:         acl,
		Shares:      shares,
		Links:       links,
		Memberships: memberships,
		Gate:        gate,
		Audit:       audit,
		Sanitizer:   bluemonday.UGCPolicy(),
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Log:         logger,
	}
}
