// internal/app/features/documents/shares.go
package documents

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	sharedlinkstore "github.com/quangphamai/mindmapnote/internal/app/store/sharedlinks"
	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

type createShareRequest struct {
	TargetEmail  string     `json:"target_email,omitempty"`
	TargetUserID string     `json:"target_user_id,omitempty"`
	AccessLevel  string     `json:"access_level"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// HandleCreateShare mints a shared link for the document, addressed to
// an email or a user id, with an optional expiry.
func (h *Handler) HandleCreateShare(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	var req createShareRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		httpjson.Error(w, http.StatusBadRequest, "expires_at must be in the future")
		return
	}

	link := models.SharedLink{
		DocumentID:  doc.ID,
		TargetEmail: strings.ToLower(strings.TrimSpace(req.TargetEmail)),
		AccessLevel: req.AccessLevel,
		Token:       uuid.NewString(),
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   res.UserID,
	}
	if req.TargetUserID != "" {
		uid, err := primitive.ObjectIDFromHex(req.TargetUserID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid target_user_id")
			return
		}
		link.TargetUserID = &uid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Shares.Create(ctx, link)
	if err != nil {
		if errors.Is(err, sharedlinkstore.ErrBadAccessLevel) || errors.Is(err, sharedlinkstore.ErrNoTarget) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("share create failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventShareCreated, doc.ID.Hex(), created.AccessLevel)
	httpjson.Write(w, http.StatusCreated, map[string]any{
		"share": created,
		"url":   h.BaseURL + "/shared/" + created.Token,
	})
}

// HandleListShares returns all of the document's shared links, revoked
// and expired ones included.
func (h *Handler) HandleListShares(w http.ResponseWriter, r *http.Request) {
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	links, err := h.Shares.ListByDocument(ctx, doc.ID)
	if err != nil {
		h.Log.Error("share listing failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if links == nil {
		links = []models.SharedLink{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"shares": links})
}

// HandleRevokeShare deactivates one of the document's shared links. The
// id must belong to this document; a share on some other document reads
// as not found.
func (h *Handler) HandleRevokeShare(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	shareID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "shareID"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "share not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	links, err := h.Shares.ListByDocument(ctx, doc.ID)
	if err != nil {
		h.Log.Error("share lookup failed",
			zap.String("document_id", doc.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	var belongs bool
	for _, l := range links {
		if l.ID == shareID {
			belongs = true
			break
		}
	}
	if !belongs {
		httpjson.Error(w, http.StatusNotFound, "share not found")
		return
	}

	if err := h.Shares.Revoke(ctx, shareID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "share not found")
			return
		}
		h.Log.Error("share revoke failed",
			zap.String("share_id", shareID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventShareRevoked, doc.ID.Hex(), shareID.Hex())
	httpjson.Write(w, http.StatusNoContent, nil)
}
