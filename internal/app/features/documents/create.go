// internal/app/features/documents/create.go
package documents

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

type createRequest struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	PrimaryGroupID string `json:"primary_group_id,omitempty"`
}

// HandleCreate creates a document owned by the caller. The body passes
// through the UGC sanitizer. A primary group may be assigned at creation
// if the caller is an active member of it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httpjson.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	doc := models.Document{
		Title:   req.Title,
		Body:    h.Sanitizer.Sanitize(req.Body),
		OwnerID: res.UserID,
	}

	if req.PrimaryGroupID != "" {
		groupID, err := primitive.ObjectIDFromHex(req.PrimaryGroupID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid primary_group_id")
			return
		}
		roles, err := h.Memberships.ActiveMemberships(ctx, res.UserID, []primitive.ObjectID{groupID})
		if err != nil {
			h.Log.Error("membership check failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		if _, member := roles[groupID]; !member {
			httpjson.Error(w, http.StatusForbidden, "not a member of the primary group")
			return
		}
		doc.PrimaryGroupID = &groupID
	}

	created, err := h.Docs.Create(ctx, doc)
	if err != nil {
		h.Log.Error("document create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventDocumentCreated, created.ID.Hex(), created.Title)
	httpjson.Write(w, http.StatusCreated, created)
}
