// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
	"github.com/jwstechnologies/hackportal/internal/app/system/normalize"
	"github.com/jwstechnologies/hackportal/internal/app/system/timeouts"
	"github.com/jwstechnologies/hackportal/internal/app/system/weberr"
)

// Handler authenticates team leaders and manages the session cookie.
type Handler struct {
	Teams *teamstore.Store
	Auth  *auth.TokenAuth
	Log   *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(teams *teamstore.Store, tokenAuth *auth.TokenAuth, logger *zap.Logger) *Handler {
	return &Handler{Teams: teams, Auth: tokenAuth, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// teamSummary is what a successful login returns. The token itself only
// travels in the cookie.
type teamSummary struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	College  string `json:"college"`
	City     string `json:"city"`
	TeamSize int    `json:"teamSize"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Team    teamSummary `json:"team"`
}

// HandleLogin serves POST /api/login.
//
// Both unknown email and wrong password come back as the same generic 401
// so the endpoint cannot be used to enumerate registered addresses.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonapi.Decode(w, r, &req); err != nil {
		jsonapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		jsonapi.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Teams.GetLeaderCredentials(ctx, email)
	if err != nil {
		if !errors.Is(err, weberr.ErrNotFound) {
			h.Log.Error("login: credential lookup failed", zap.Error(err))
			jsonapi.Error(w, http.StatusInternalServerError, "Login failed")
			return
		}
		jsonapi.Error(w, http.StatusUnauthorized, weberr.ErrInvalidCredentials.Error())
		return
	}

	if team.Leader.PasswordHash == "" ||
		!auth.VerifyPassword(team.Leader.PasswordHash, req.Password) {
		jsonapi.Error(w, http.StatusUnauthorized, weberr.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.Auth.Issue(team.ID.Hex(), team.Leader.Email)
	if err != nil {
		h.Log.Error("login: token issue failed", zap.Error(err))
		jsonapi.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	h.Auth.SetCookie(w, token)

	jsonapi.Write(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Team: teamSummary{
			ID:       team.ID.Hex(),
			TeamID:   team.TeamID,
			Name:     team.Leader.Name,
			Email:    team.Leader.Email,
			College:  team.Leader.College,
			City:     team.Leader.City,
			TeamSize: team.Leader.TeamSize,
		},
	})
}

// HandleLogout serves POST /api/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Auth.ClearCookie(w)
	jsonapi.Write(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
