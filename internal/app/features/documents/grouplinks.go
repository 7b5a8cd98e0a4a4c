// internal/app/features/documents/grouplinks.go
package documents

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	grouplinkstore "github.com/quangphamai/mindmapnote/internal/app/store/grouplinks"
	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// HandleListGroupLinks returns the document's explicit group links.
func (h *Handler) HandleListGroupLinks(w http.ResponseWriter, r *http.Request) {
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	links, err := h.Links.ListByDocument(ctx, doc.ID)
	if err != nil {
		h.Log.Error("group link listing failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if links == nil {
		links = []models.GroupDocumentLink{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"links": links})
}

type linkGroupRequest struct {
	GroupID     string `json:"group_id"`
	AccessLevel string `json:"access_level"`
}

// HandleLinkGroup links the document into a group. Besides admin on the
// document (checked by the gate), the caller must hold an admin-rank
// active membership in the target group; linking a document into a
// group grants every member of that group access.
func (h *Handler) HandleLinkGroup(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	var req linkGroupRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.groupAdmin(ctx, w, res.UserID, groupID) {
		return
	}

	link, err := h.Links.Add(ctx, models.GroupDocumentLink{
		GroupID:     groupID,
		DocumentID:  doc.ID,
		AccessLevel: req.AccessLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, grouplinkstore.ErrBadAccessLevel):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, grouplinkstore.ErrDuplicateLink):
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			h.Log.Error("group link failed",
				zap.String("document_id", doc.ID.Hex()),
				zap.String("group_id", groupID.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventGroupLinkAdded, doc.ID.Hex(),
		groupID.Hex()+" level="+link.AccessLevel)
	httpjson.Write(w, http.StatusCreated, link)
}

// HandleUnlinkGroup removes the document's link into a group. Same
// admin-rank membership requirement as linking.
func (h *Handler) HandleUnlinkGroup(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.groupAdmin(ctx, w, res.UserID, groupID) {
		return
	}

	removed, err := h.Links.Remove(ctx, groupID, doc.ID)
	if err != nil {
		h.Log.Error("group unlink failed",
			zap.String("document_id", doc.ID.Hex()),
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if removed == 0 {
		httpjson.Error(w, http.StatusNotFound, "link not found")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventGroupLinkRemoved, doc.ID.Hex(), groupID.Hex())
	httpjson.Write(w, http.StatusNoContent, nil)
}

// groupAdmin verifies an admin-rank active membership in the group,
// writing the failure response itself when the check does not pass.
func (h *Handler) groupAdmin(ctx context.Context, w http.ResponseWriter, userID, groupID primitive.ObjectID) bool {
	roles, err := h.Memberships.ActiveMemberships(ctx, userID, []primitive.ObjectID{groupID})
	if err != nil {
		h.Log.Error("membership check failed",
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return false
	}
	role := roles[groupID]
	if role != models.RoleAdmin && role != models.RoleOwner {
		httpjson.Error(w, http.StatusForbidden, "group admin membership required")
		return false
	}
	return true
}
