// internal/app/features/account/handler.go
package account

import (
	"go.uber.org/zap"

	userstore "github.com/quangphamai/mindmapnote/internal/app/store/users"
)

// Handler is the dependency container for register/login/logout.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}
