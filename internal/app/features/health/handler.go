// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
)

type Handler struct {
	Client *mongo.Client
	Log    *zap.Logger
}

func NewHandler(client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleHealth)
	return r
}

// HandleHealth reports liveness and Mongo connectivity.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Warn("health ping failed", zap.Error(err))
		httpjson.Write(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"mongo":  "unreachable",
		})
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{
		"status": "ok",
		"mongo":  "ok",
	})
}
