package login_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jwstechnologies/hackportal/internal/app/features/login"
	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
	"github.com/jwstechnologies/hackportal/internal/testutil"
)

func newHandler(t *testing.T, fx *testutil.Fixtures) *login.Handler {
	t.Helper()
	ta, err := auth.NewTokenAuth("test-secret", false)
	if err != nil {
		t.Fatalf("NewTokenAuth: %v", err)
	}
	return login.NewHandler(fx.Teams(), ta, zap.NewNop())
}

func TestHandleLogin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, fx)

	created := fx.CreateTeam(ctx, testutil.TeamSpec{
		Email: "asha@example.com", Password: "hunter2hunter2",
	})

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/login", map[string]string{
		"email": "asha@example.com", "password": "hunter2hunter2",
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Team    struct {
			ID     string `json:"id"`
			TeamID string `json:"teamId"`
		} `json:"team"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Team.ID != created.ID.Hex() || resp.Team.TeamID != created.TeamID {
		t.Errorf("team = %+v", resp.Team)
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.TokenCookie {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("no session cookie set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if strings.Contains(rec.Body.String(), sessionCookie.Value) {
		t.Error("token leaked into the response body")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, fx)

	fx.CreateTeam(ctx, testutil.TeamSpec{
		Email: "asha@example.com", Password: "hunter2hunter2",
	})

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/login", map[string]string{
		"email": "asha@example.com", "password": "wrong",
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	wrongPasswordBody := rec.Body.String()

	// Unknown email must be indistinguishable from a wrong password.
	rec = httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/login", map[string]string{
		"email": "nobody@example.com", "password": "wrong",
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if rec.Body.String() != wrongPasswordBody {
		t.Errorf("unknown-email body %q differs from wrong-password body %q",
			rec.Body.String(), wrongPasswordBody)
	}
}

func TestHandleLogin_NoCredentialRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, fx)

	// Legacy record with no stored hash can never log in.
	fx.CreateTeam(ctx, testutil.TeamSpec{Email: "old@example.com"})

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/login", map[string]string{
		"email": "old@example.com", "password": "anything",
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleLogin_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, fx)

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/api/login", map[string]string{
		"email": "", "password": "",
	}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleLogout_ClearsCookie(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, fx)

	rec := httptest.NewRecorder()
	h.HandleLogout(rec, httptest.NewRequest("POST", "/api/logout", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Error("logout did not expire the session cookie")
	}
}
