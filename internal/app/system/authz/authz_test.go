package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
	"github.com/quangphamai/mindmapnote/internal/app/system/authz"
)

func TestUserCtx_ValidUser(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:    id.Hex(),
		Name:  "Ada",
		Email: "Ada@Example.com",
	})

	name, email, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if name != "Ada" {
		t.Errorf("name: got %q, want %q", name, "Ada")
	}
	if email != "ada@example.com" {
		t.Errorf("email not lowercased: got %q", email)
	}
	if userID != id {
		t.Errorf("userID: got %s, want %s", userID.Hex(), id.Hex())
	}
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	_, _, userID, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false for anonymous request")
	}
	if !userID.IsZero() {
		t.Error("expected NilObjectID for anonymous request")
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "garbage", Email: "x@y.z"})

	_, _, _, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false for malformed session user id")
	}
}

func TestPrincipal(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Email: "P@Q.R"})

	p, ok := authz.Principal(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if p.UserID != id {
		t.Errorf("UserID: got %s, want %s", p.UserID.Hex(), id.Hex())
	}
	if p.Email != "p@q.r" {
		t.Errorf("Email: got %q, want %q", p.Email, "p@q.r")
	}

	var anon http.Request
	if _, ok := authz.Principal(&anon); ok {
		t.Error("expected ok=false for anonymous request")
	}
}
