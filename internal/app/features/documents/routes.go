// internal/app/features/documents/routes.go
package documents

import (
	"github.com/go-chi/chi/v5"

	"github.com/quangphamai/mindmapnote/internal/app/policy/docaccess"
	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /documents requires authentication; the per-route
	// action gates decide the rest.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// CREATE / LIST
		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.HandleListAccessible)

		// READ
		pr.With(h.Gate.Require(docaccess.ActionView)).Get("/{id}", h.HandleGet)
		pr.With(h.Gate.Require(docaccess.ActionDownload)).Get("/{id}/download", h.HandleDownload)

		// WRITE
		pr.With(h.Gate.Require(docaccess.ActionEdit)).Put("/{id}", h.HandleUpdate)
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Delete("/{id}", h.HandleDelete)

		// ACL entries
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Get("/{id}/acl", h.HandleListACL)
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Post("/{id}/acl", h.HandleUpsertACL)
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Delete("/{id}/acl/{subjectType}/{subjectID}", h.HandleRemoveACL)

		// Shared links
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Get("/{id}/shares", h.HandleListShares)
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Post("/{id}/shares", h.HandleCreateShare)
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Delete("/{id}/shares/{shareID}", h.HandleRevokeShare)

		// Group links
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Get("/{id}/groups", h.HandleListGroupLinks)
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Post("/{id}/groups", h.HandleLinkGroup)
		pr.With(h.Gate.Require(docaccess.ActionAdmin)).Delete("/{id}/groups/{groupID}", h.HandleUnlinkGroup)
	})

	return r
}
