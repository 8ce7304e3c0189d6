// internal/app/system/auth/token.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
)

const (
	// TokenCookie is the cookie carrying the leader session token.
	// The token is never returned in a response body.
	TokenCookie = "token"

	// TokenTTL is the leader session validity window.
	TokenTTL = 7 * 24 * time.Hour
)

// LeaderClaims is the signed payload of a leader session token.
type LeaderClaims struct {
	TeamID string `json:"teamId"` // hex ObjectID of the team record
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// LeaderSession is what handlers read from the request context after the
// token middleware has run.
type LeaderSession struct {
	TeamID string
	Email  string
}

type ctxKey string

const leaderKey ctxKey = "currentLeader"

// CurrentLeader returns the session from context and a found flag.
func CurrentLeader(r *http.Request) (*LeaderSession, bool) {
	s, ok := r.Context().Value(leaderKey).(*LeaderSession)
	return s, ok
}

// WithTestLeader injects a session into the request context, bypassing the
// token middleware. Test use only.
func WithTestLeader(r *http.Request, s *LeaderSession) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), leaderKey, s))
}

// TokenAuth issues and verifies leader session tokens and manages the
// session cookie.
type TokenAuth struct {
	secret []byte
	secure bool
}

// NewTokenAuth builds a TokenAuth. An empty signing secret is a startup
// error, not a per-request one.
func NewTokenAuth(secret string, secure bool) (*TokenAuth, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is empty")
	}
	return &TokenAuth{secret: []byte(secret), secure: secure}, nil
}

// Issue signs a token for the given team and leader email.
func (a *TokenAuth) Issue(teamID, email string) (string, error) {
	now := time.Now()
	claims := LeaderClaims{
		TeamID: teamID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hackportal",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(a.secret)
}

// Parse validates a token and extracts its claims.
func (a *TokenAuth) Parse(token string) (*LeaderClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &LeaderClaims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*LeaderClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SetCookie delivers a token as an HTTP-only, same-site-strict cookie.
func (a *TokenAuth) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the session cookie.
func (a *TokenAuth) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// LoadLeader injects the leader session into context when a valid token
// cookie is present. Absent or invalid tokens just leave the context empty.
func (a *TokenAuth) LoadLeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(TokenCookie)
		if err == nil && c.Value != "" {
			if claims, err := a.Parse(c.Value); err == nil {
				s := &LeaderSession{TeamID: claims.TeamID, Email: claims.Email}
				r = r.WithContext(context.WithValue(r.Context(), leaderKey, s))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLeader rejects requests without a leader session.
func RequireLeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentLeader(r); !ok {
			jsonapi.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
