// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"

	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /groups requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// CREATE / LIST MINE
		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.HandleListMine)

		// VIEW
		pr.Get("/{id}", h.HandleGet)

		// MEMBERSHIP LIFECYCLE
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/leave", h.HandleLeave)

		// MEMBER MANAGEMENT (admin-rank membership required)
		pr.Post("/{id}/members", h.HandleAddMember)
		pr.Delete("/{id}/members/{userID}", h.HandleRemoveMember)
		pr.Put("/{id}/members/{userID}", h.HandleChangeRole)
	})

	return r
}
