// internal/app/features/documents/list.go
package documents

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// HandleListAccessible returns the documents the caller can reach:
// their own, plus those granted through a direct ACL entry, a group the
// caller is an active member of, or an unexpired shared link. This is a
// listing convenience; the gate re-decides access on every per-document
// request.
func (h *Handler) HandleListAccessible(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	owned, err := h.Docs.ListByOwner(ctx, res.UserID)
	if err != nil {
		h.Log.Error("owned listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	seen := make(map[primitive.ObjectID]struct{}, len(owned))
	for _, d := range owned {
		seen[d.ID] = struct{}{}
	}
	var grantedIDs []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			grantedIDs = append(grantedIDs, id)
		}
	}

	entries, err := h.ACL.ListByUserSubject(ctx, res.UserID)
	if err != nil {
		h.Log.Error("acl listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	for _, e := range entries {
		add(e.DocumentID)
	}

	memberships, err := h.Memberships.ListActiveByUser(ctx, res.UserID)
	if err != nil {
		h.Log.Error("membership listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	groupIDs := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}
	links, err := h.Links.ListByGroups(ctx, groupIDs)
	if err != nil {
		h.Log.Error("group link listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	for _, l := range links {
		add(l.DocumentID)
	}

	// The primary group is an implicit link with no row in
	// group_document_links, so it takes its own query.
	primaries, err := h.Docs.ListByPrimaryGroups(ctx, groupIDs)
	if err != nil {
		h.Log.Error("primary group listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	for _, d := range primaries {
		add(d.ID)
	}

	shares, err := h.Shares.ListActiveForRecipient(ctx, res.Email, res.UserID)
	if err != nil {
		h.Log.Error("share listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	now := time.Now()
	for _, s := range shares {
		if !s.Expired(now) {
			add(s.DocumentID)
		}
	}

	granted, err := h.Docs.ListByIDs(ctx, grantedIDs)
	if err != nil {
		h.Log.Error("granted hydration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	docs := make([]models.Document, 0, len(owned)+len(granted))
	docs = append(docs, owned...)
	docs = append(docs, granted...)
	httpjson.Write(w, http.StatusOK, map[string]any{"documents": docs})
}
