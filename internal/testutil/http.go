package testutil

import (
	"net/http"
	"net/http/httptest"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the user
// directly.
func WithUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
	})
}

// WithUserID is WithUser for tests that only care about the identity.
func WithUserID(r *http.Request, id primitive.ObjectID) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    id.Hex(),
		Name:  "Test User",
		Email: "user-" + id.Hex() + "@example.com",
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
