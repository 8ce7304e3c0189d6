package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
)

func TestAdminSessions_SignInSignOut(t *testing.T) {
	sessions := auth.NewAdminSessions("0123456789abcdef0123456789abcdef", "test-admin", false, zap.NewNop())

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	if err := sessions.SignIn(rec, req, "admin@example.com"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	// The cookie authenticates subsequent requests.
	req = httptest.NewRequest("GET", "/api/admin/teams", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	email, ok := sessions.IsAdmin(req)
	if !ok {
		t.Fatal("session cookie not recognized")
	}
	if email != "admin@example.com" {
		t.Errorf("admin email = %q", email)
	}

	// Sign out invalidates the session.
	rec = httptest.NewRecorder()
	if err := sessions.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	req = httptest.NewRequest("GET", "/api/admin/teams", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	if _, ok := sessions.IsAdmin(req); ok {
		t.Error("signed-out session still recognized")
	}
}

func TestRequireAdmin(t *testing.T) {
	sessions := auth.NewAdminSessions("0123456789abcdef0123456789abcdef", "test-admin", false, zap.NewNop())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	sessions.RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/teams", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request: status = %d, want 401", rec.Code)
	}
}
