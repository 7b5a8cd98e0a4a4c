// internal/app/features/documents/edit.go
package documents

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
)

type updateRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// HandleUpdate replaces the document's title and body. The gate has
// already authorized the edit action; ownership and the primary group
// are not editable here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	var req updateRequest
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

	body := h.Sanitizer.Sanitize(req.Body)
	if err := h.Docs.UpdateContent(ctx, doc.ID, req.Title, body); err != nil {
		h.Log.Error("document update failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventDocumentUpdated, doc.ID.Hex(), req.Title)

	doc.Title = req.Title
	doc.Body = body
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleDelete removes the document and its grant rows. The gate has
// already authorized the admin action.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Docs.Delete(ctx, doc.ID); err != nil {
		h.Log.Error("document delete failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Grant rows for a deleted document are dead weight; sweep them but
	// don't fail the delete if a sweep trips.
	if _, err := h.ACL.RemoveByDocument(ctx, doc.ID); err != nil {
		h.Log.Warn("acl sweep failed", zap.String("document_id", doc.ID.Hex()), zap.Error(err))
	}
	if _, err := h.Links.RemoveByDocument(ctx, doc.ID); err != nil {
		h.Log.Warn("group link sweep failed", zap.String("document_id", doc.ID.Hex()), zap.Error(err))
	}
	if _, err := h.Shares.RemoveByDocument(ctx, doc.ID); err != nil {
		h.Log.Warn("shared link sweep failed", zap.String("document_id", doc.ID.Hex()), zap.Error(err))
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventDocumentDeleted, doc.ID.Hex(), doc.Title)
	httpjson.Write(w, http.StatusNoContent, nil)
}
