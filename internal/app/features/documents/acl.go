// internal/app/features/documents/acl.go
package documents

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	aclstore "github.com/quangphamai/mindmapnote/internal/app/store/aclentries"
	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// HandleListACL returns the document's allow-list entries.
func (h *Handler) HandleListACL(w http.ResponseWriter, r *http.Request) {
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	entries, err := h.ACL.ListByDocument(ctx, doc.ID)
	if err != nil {
		h.Log.Error("acl listing failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []models.DocumentACLEntry{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"entries": entries})
}

type upsertACLRequest struct {
	SubjectType string `json:"subject_type"`
	SubjectID   string `json:"subject_id"`
	Role        string `json:"role"`
}

// HandleUpsertACL grants or re-grants an allow-list entry. Re-granting
// the same subject overwrites its role.
func (h *Handler) HandleUpsertACL(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	var req upsertACLRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	subjectID, err := primitive.ObjectIDFromHex(req.SubjectID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid subject_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entry, err := h.ACL.Upsert(ctx, models.DocumentACLEntry{
		DocumentID:  doc.ID,
		SubjectType: req.SubjectType,
		SubjectID:   subjectID,
		Role:        req.Role,
		CreatedBy:   res.UserID,
	})
	if err != nil {
		if errors.Is(err, aclstore.ErrBadSubjectType) || errors.Is(err, aclstore.ErrBadRole) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("acl upsert failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventACLGranted, doc.ID.Hex(),
		fmt.Sprintf("%s:%s role=%s", entry.SubjectType, entry.SubjectID.Hex(), entry.Role))
	httpjson.Write(w, http.StatusOK, entry)
}

// HandleRemoveACL revokes the entry for (subjectType, subjectID).
func (h *Handler) HandleRemoveACL(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	subjectType := chi.URLParam(r, "subjectType")
	subjectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "subjectID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid subject id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	removed, err := h.ACL.Remove(ctx, doc.ID, subjectType, subjectID)
	if err != nil {
		h.Log.Error("acl remove failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if removed == 0 {
		httpjson.Error(w, http.StatusNotFound, "acl entry not found")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventACLRevoked, doc.ID.Hex(),
		fmt.Sprintf("%s:%s", subjectType, subjectID.Hex()))
	httpjson.Write(w, http.StatusNoContent, nil)
}
