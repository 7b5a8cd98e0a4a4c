// Package gates provides authorization gates for HTTP handlers.
//
// # Three-Tier Authorization Pattern
//
// MindMapNote uses a three-tier authorization approach:
//
//  1. Route-Level Middleware (auth.RequireSignedIn)
//     Applied in routes.go files for coarse-grained access control:
//     every route in a group requires a signed-in user.
//
//  2. Document Gate (this package)
//     Wraps routes that operate on a specific document. The gate loads
//     the document, asks the access engine whether the caller may
//     perform the route's action, and either passes the document
//     through in the request context or ends the request with the
//     right status code.
//
//  3. Policy Layer (internal/app/policy/docaccess)
//     The access engine itself. It returns (bool, error); the gate
//     translates those into HTTP.
//
// Status mapping: no principal is 401, an unparseable or unknown
// document id is 404, an engine denial is 403, and an engine error is
// 500. A denial never leaks whether the document exists beyond what the
// caller could already infer.
package gates

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/policy/docaccess"
	"github.com/quangphamai/mindmapnote/internal/app/system/authz"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// DocumentSource loads the document a gated route operates on.
type DocumentSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error)
}

// DocumentGate authorizes document routes against the access engine.
type DocumentGate struct {
	engine *docaccess.Engine
	docs   DocumentSource
	log    *zap.Logger
}

// NewDocumentGate builds a gate over the given engine and document
// source.
func NewDocumentGate(engine *docaccess.Engine, docs DocumentSource, log *zap.Logger) *DocumentGate {
	return &DocumentGate{engine: engine, docs: docs, log: log}
}

type ctxKey string

const documentKey ctxKey = "gatedDocument"

// DocumentFrom returns the document the gate loaded for this request.
// Handlers behind a gate use this instead of refetching.
func DocumentFrom(ctx context.Context) (models.Document, bool) {
	doc, ok := ctx.Value(documentKey).(models.Document)
	return doc, ok
}

// Require returns middleware that authorizes the route for the given
// action, taking the document id from the {id} URL parameter.
func (g *DocumentGate) Require(action docaccess.Action) func(http.Handler) http.Handler {
	return g.RequireFrom(action, func(r *http.Request) string {
		return chi.URLParam(r, "id")
	})
}

// RequireFrom is Require with a custom document-id extractor, for routes
// that carry the id under a different parameter name.
func (g *DocumentGate) RequireFrom(action docaccess.Action, idFrom func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := authz.Principal(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			// A malformed id cannot name any document; same outcome as
			// a lookup miss.
			docID, err := primitive.ObjectIDFromHex(idFrom(r))
			if err != nil {
				httpjson.Error(w, http.StatusNotFound, "document not found")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
			defer cancel()

			doc, err := g.docs.GetByID(ctx, docID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					httpjson.Error(w, http.StatusNotFound, "document not found")
					return
				}
				g.log.Error("document lookup failed",
					zap.String("document_id", docID.Hex()),
					zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "internal error")
				return
			}

			allowed, err := g.engine.HasAccess(ctx, p, doc, action)
			if err != nil {
				// The decision could not be made; failing the request is
				// mandatory, denying it would be wrong.
				g.log.Error("access decision failed",
					zap.String("document_id", docID.Hex()),
					zap.String("user_id", p.UserID.Hex()),
					zap.String("action", string(action)),
					zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !allowed {
				httpjson.Error(w, http.StatusForbidden, "access denied")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), documentKey, doc)))
		})
	}
}

// Result contains the result of a handler-level gate check.
type Result struct {
	Name   string
	Email  string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated, for handlers that are not
// behind a document gate. If not authenticated, it writes a 401 envelope
// and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	name, email, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return Result{OK: false}
	}
	return Result{Name: name, Email: email, UserID: uid, OK: true}
}
