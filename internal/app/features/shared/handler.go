// internal/app/features/shared/handler.go

// Package shared serves the public share-token endpoint: a token minted
// for a document resolves to a view-level read of that document without
// a session, as long as the link is active and unexpired.
package shared

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	documentstore "github.com/quangphamai/mindmapnote/internal/app/store/documents"
	sharedlinkstore "github.com/quangphamai/mindmapnote/internal/app/store/sharedlinks"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
)

type Handler struct {
	Docs   *documentstore.Store
	Shares *sharedlinkstore.Store
	Log    *zap.Logger
}

func NewHandler(docs *documentstore.Store, shares *sharedlinkstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Docs: docs, Shares: shares, Log: logger}
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{token}", h.HandleResolveToken)
	return r
}

// HandleResolveToken resolves a share token to its document. Revoked,
// expired, and unknown tokens all read as not found; the response never
// says which.
func (h *Handler) HandleResolveToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	link, err := h.Shares.GetActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "share not found")
			return
		}
		h.Log.Error("token lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if link.Expired(time.Now()) {
		httpjson.Error(w, http.StatusNotFound, "share not found")
		return
	}

	doc, err := h.Docs.GetByID(ctx, link.DocumentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "share not found")
			return
		}
		h.Log.Error("document lookup failed",
			zap.String("document_id", link.DocumentID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"document":     doc,
		"access_level": link.AccessLevel,
	})
}
