// internal/app/system/auth/admin.go
package auth

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
)

const (
	adminIsAuthKey = "is_admin"
	adminEmailKey  = "admin_email"
)

// AdminSessions gates the admin console behind a server-signed session
// cookie. A single operator role exists; the credential itself (email +
// bcrypt hash) comes from configuration and is checked by the admin
// feature, not here.
type AdminSessions struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewAdminSessions builds the admin session manager. An empty session key
// falls back to an ephemeral random key: sessions then die with the
// process, which is acceptable for dev and never for prod.
func NewAdminSessions(sessionKey, cookieName string, secure bool, logger *zap.Logger) *AdminSessions {
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("admin session key not configured; using ephemeral key")
	} else if len(key) < 32 {
		logger.Warn("admin session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}

	return &AdminSessions{store: store, name: cookieName, log: logger}
}

// SignIn marks the current session as an authenticated admin.
func (s *AdminSessions) SignIn(w http.ResponseWriter, r *http.Request, email string) error {
	sess, _ := s.store.Get(r, s.name)
	sess.Values[adminIsAuthKey] = true
	sess.Values[adminEmailKey] = email
	return sess.Save(r, w)
}

// SignOut drops the admin session.
func (s *AdminSessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// IsAdmin reports whether the request carries an authenticated admin
// session, and the operator email if so.
func (s *AdminSessions) IsAdmin(r *http.Request) (string, bool) {
	sess, _ := s.store.Get(r, s.name)
	if ok, _ := sess.Values[adminIsAuthKey].(bool); !ok {
		return "", false
	}
	email, _ := sess.Values[adminEmailKey].(string)
	return email, true
}

// RequireAdmin rejects requests without an admin session.
func (s *AdminSessions) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.IsAdmin(r); !ok {
			jsonapi.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
