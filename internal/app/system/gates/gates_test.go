package gates_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/policy/docaccess"
	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// In-memory grant sources. The gate tests only need ownership plus one
// failure mode, so everything else stays empty.

type emptyMemberships struct{}

func (emptyMemberships) ActiveMemberships(_ context.Context, _ primitive.ObjectID, _ []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	return map[primitive.ObjectID]string{}, nil
}

type emptyLinks struct{}

func (emptyLinks) ListByDocument(_ context.Context, _ primitive.ObjectID) ([]models.GroupDocumentLink, error) {
	return nil, nil
}

type emptyACL struct{}

func (emptyACL) ListByDocument(_ context.Context, _ primitive.ObjectID) ([]models.DocumentACLEntry, error) {
	return nil, nil
}

type emptyShares struct{}

func (emptyShares) ListActiveForTarget(_ context.Context, _ primitive.ObjectID, _ string, _ primitive.ObjectID) ([]models.SharedLink, error) {
	return nil, nil
}

type failingShares struct{ err error }

func (f failingShares) ListActiveForTarget(_ context.Context, _ primitive.ObjectID, _ string, _ primitive.ObjectID) ([]models.SharedLink, error) {
	return nil, f.err
}

type fakeDocs struct {
	docs map[primitive.ObjectID]models.Document
}

func (f fakeDocs) GetByID(_ context.Context, id primitive.ObjectID) (models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return models.Document{}, mongo.ErrNoDocuments
	}
	return doc, nil
}

func withTestUser(r *http.Request, id primitive.ObjectID) *http.Request {
	user := &auth.SessionUser{
		ID:    id.Hex(),
		Name:  "Test User",
		Email: "test@example.com",
	}
	return auth.WithTestUser(r, user)
}

// serveGated mounts the gate on GET /documents/{id} and serves the
// request, returning the recorder. The inner handler reports whether the
// gate stashed the document in context.
func serveGated(t *testing.T, gate *gates.DocumentGate, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.With(gate.Require(docaccess.ActionView)).Get("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := gates.DocumentFrom(r.Context()); !ok {
			t.Error("expected gated document in request context")
		}
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newGate(docs fakeDocs, shares docaccess.ShareSource) *gates.DocumentGate {
	engine := docaccess.NewEngine(docaccess.DefaultRanks(),
		emptyMemberships{}, emptyLinks{}, emptyACL{}, shares, zap.NewNop())
	return gates.NewDocumentGate(engine, docs, zap.NewNop())
}

func TestDocumentGate_OwnerAllowed(t *testing.T) {
	owner := primitive.NewObjectID()
	doc := models.Document{ID: primitive.NewObjectID(), OwnerID: owner}
	gate := newGate(fakeDocs{docs: map[primitive.ObjectID]models.Document{doc.ID: doc}}, emptyShares{})

	req := httptest.NewRequest("GET", "/documents/"+doc.ID.Hex(), nil)
	req = withTestUser(req, owner)

	rec := serveGated(t, gate, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestDocumentGate_Anonymous_Unauthorized(t *testing.T) {
	doc := models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	gate := newGate(fakeDocs{docs: map[primitive.ObjectID]models.Document{doc.ID: doc}}, emptyShares{})

	req := httptest.NewRequest("GET", "/documents/"+doc.ID.Hex(), nil)

	rec := serveGated(t, gate, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestDocumentGate_MalformedID_NotFound(t *testing.T) {
	gate := newGate(fakeDocs{docs: map[primitive.ObjectID]models.Document{}}, emptyShares{})

	req := httptest.NewRequest("GET", "/documents/not-a-hex-id", nil)
	req = withTestUser(req, primitive.NewObjectID())

	rec := serveGated(t, gate, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDocumentGate_UnknownDocument_NotFound(t *testing.T) {
	gate := newGate(fakeDocs{docs: map[primitive.ObjectID]models.Document{}}, emptyShares{})

	req := httptest.NewRequest("GET", "/documents/"+primitive.NewObjectID().Hex(), nil)
	req = withTestUser(req, primitive.NewObjectID())

	rec := serveGated(t, gate, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDocumentGate_Stranger_Forbidden(t *testing.T) {
	doc := models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	gate := newGate(fakeDocs{docs: map[primitive.ObjectID]models.Document{doc.ID: doc}}, emptyShares{})

	req := httptest.NewRequest("GET", "/documents/"+doc.ID.Hex(), nil)
	req = withTestUser(req, primitive.NewObjectID())

	rec := serveGated(t, gate, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestDocumentGate_EngineError_InternalError(t *testing.T) {
	// A transient store failure must surface as 500, never 403.
	doc := models.Document{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID()}
	gate := newGate(
		fakeDocs{docs: map[primitive.ObjectID]models.Document{doc.ID: doc}},
		failingShares{err: errors.New("connection reset")})

	req := httptest.NewRequest("GET", "/documents/"+doc.ID.Hex(), nil)
	req = withTestUser(req, primitive.NewObjectID())

	rec := serveGated(t, gate, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

// Handler-level gate

func TestRequireAuth_Authenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/protected", nil)
	req = withTestUser(req, primitive.NewObjectID())
	rec := httptest.NewRecorder()

	result := gates.RequireAuth(rec, req)

	if !result.OK {
		t.Error("expected OK to be true for authenticated user")
	}
	if result.Email != "test@example.com" {
		t.Errorf("Email: got %q, want %q", result.Email, "test@example.com")
	}
	if result.UserID.IsZero() {
		t.Error("expected UserID to be set")
	}
}

func TestRequireAuth_NotAuthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/protected", nil)
	rec := httptest.NewRecorder()

	result := gates.RequireAuth(rec, req)

	if result.OK {
		t.Error("expected OK to be false for unauthenticated user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
