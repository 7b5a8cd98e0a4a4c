// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountfeature "github.com/quangphamai/mindmapnote/internal/app/features/account"
	documentsfeature "github.com/quangphamai/mindmapnote/internal/app/features/documents"
	groupsfeature "github.com/quangphamai/mindmapnote/internal/app/features/groups"
	healthfeature "github.com/quangphamai/mindmapnote/internal/app/features/health"
	sharedfeature "github.com/quangphamai/mindmapnote/internal/app/features/shared"
	"github.com/quangphamai/mindmapnote/internal/app/policy/docaccess"
	aclstore "github.com/quangphamai/mindmapnote/internal/app/store/aclentries"
	auditstore "github.com/quangphamai/mindmapnote/internal/app/store/audit"
	documentstore "github.com/quangphamai/mindmapnote/internal/app/store/documents"
	grouplinkstore "github.com/quangphamai/mindmapnote/internal/app/store/grouplinks"
	groupstore "github.com/quangphamai/mindmapnote/internal/app/store/groups"
	membershipstore "github.com/quangphamai/mindmapnote/internal/app/store/memberships"
	sharedlinkstore "github.com/quangphamai/mindmapnote/internal/app/store/sharedlinks"
	userstore "github.com/quangphamai/mindmapnote/internal/app/store/users"
	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It wires the stores, the access engine,
// the document gate, and the feature routers together.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Session cookies are Secure in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, appCfg.SessionTTL, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	docs := documentstore.New(db)
	groups := groupstore.New(db)
	memberships := membershipstore.New(db)
	links := grouplinkstore.New(db)
	acl := aclstore.New(db)
	shares := sharedlinkstore.New(db)
	users := userstore.New(db)
	audit := auditlog.New(auditstore.New(db), logger)

	// The access engine and its gate: every document route goes through
	// them.
	engine := docaccess.NewEngine(docaccess.DefaultRanks(), memberships, links, acl, shares, logger)
	gate := gates.NewDocumentGate(engine, docs, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed
	// in, making the current user available via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	accountHandler := accountfeature.NewHandler(users, logger)
	r.Mount("/auth", accountfeature.Routes(accountHandler))

	// Documents and their grant surfaces
	documentsHandler := documentsfeature.NewHandler(docs, acl, shares, links, memberships, gate, audit, appCfg.BaseURL, logger)
	r.Mount("/documents", documentsfeature.Routes(documentsHandler))

	// Groups and memberships
	groupsHandler := groupsfeature.NewHandler(groups, memberships, users, audit, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	// Public share-token resolution (no session required)
	sharedHandler := sharedfeature.NewHandler(docs, shares, logger)
	r.Mount("/shared", sharedfeature.Routes(sharedHandler))

	return r, nil
}
