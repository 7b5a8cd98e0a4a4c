package account_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/features/account"
	userstore "github.com/quangphamai/mindmapnote/internal/app/store/users"
	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
	"github.com/quangphamai/mindmapnote/internal/app/system/indexes"
	"github.com/quangphamai/mindmapnote/internal/testutil"
)

func newEnv(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	// SignIn writes through the package session store.
	if err := auth.InitSessionStore("0123456789abcdef0123456789abcdef", "", time.Hour, false, logger); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	h := account.NewHandler(userstore.New(db), logger)
	return account.Routes(h), db
}

func do(t *testing.T, router http.Handler, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandleRegister(t *testing.T) {
	router, db := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	body := `{"full_name":"New User","email":"NEW@Example.com","password":"s3cret-enough"}`
	r := httptest.NewRequest("POST", "/register", strings.NewReader(body))
	rec := do(t, router, r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	// Registration starts a session.
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
	// The password hash never leaves the server.
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("response leaked the password hash")
	}

	user, err := userstore.New(db).GetByEmail(ctx, "new@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "s3cret-enough" {
		t.Error("expected a hashed password in the store")
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	router, _ := newEnv(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"full_name":"X","email":"not-an-email","password":"s3cret-enough"}`},
		{"short password", `{"full_name":"X","email":"x@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/register", strings.NewReader(tc.body))
			rec := do(t, router, r)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	router, _ := newEnv(t)

	body := `{"full_name":"First","email":"dup@example.com","password":"s3cret-enough"}`
	rec := do(t, router, httptest.NewRequest("POST", "/register", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register status: got %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = do(t, router, httptest.NewRequest("POST", "/register", strings.NewReader(body)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleLogin(t *testing.T) {
	router, _ := newEnv(t)

	register := `{"full_name":"Login User","email":"login@example.com","password":"s3cret-enough"}`
	rec := do(t, router, httptest.NewRequest("POST", "/register", strings.NewReader(register)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status: got %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = do(t, router, httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email":"login@example.com","password":"s3cret-enough"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	router, _ := newEnv(t)

	register := `{"full_name":"Login User","email":"login@example.com","password":"s3cret-enough"}`
	rec := do(t, router, httptest.NewRequest("POST", "/register", strings.NewReader(register)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status: got %d, want %d", rec.Code, http.StatusCreated)
	}

	// Wrong password and unknown email read the same.
	for _, body := range []string{
		`{"email":"login@example.com","password":"wrong-password"}`,
		`{"email":"nobody@example.com","password":"s3cret-enough"}`,
	} {
		rec = do(t, router, httptest.NewRequest("POST", "/login", strings.NewReader(body)))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if !strings.Contains(rec.Body.String(), "invalid email or password") {
			t.Errorf("unexpected error body: %s", rec.Body.String())
		}
	}
}

func TestHandleLogout(t *testing.T) {
	router, _ := newEnv(t)

	rec := do(t, router, httptest.NewRequest("POST", "/logout", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be cleared")
	}
}
