// internal/app/features/team/handler.go
package team

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
	"github.com/jwstechnologies/hackportal/internal/app/system/inputval"
	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
	"github.com/jwstechnologies/hackportal/internal/app/system/normalize"
	"github.com/jwstechnologies/hackportal/internal/app/system/sanitize"
	"github.com/jwstechnologies/hackportal/internal/app/system/timeouts"
	"github.com/jwstechnologies/hackportal/internal/app/system/weberr"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
)

// Handler serves the leader's own-team endpoints. Every route sits behind
// the token middleware; ownership of the target record is checked again
// here because the middleware only proves who the caller is.
type Handler struct {
	Teams *teamstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a team Handler.
func NewHandler(teams *teamstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Teams: teams, Log: logger}
}

// HandleGetOwn serves GET /api/team: the caller's team from the session.
func (h *Handler) HandleGetOwn(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.CurrentLeader(r)
	if !ok {
		jsonapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	oid, err := primitive.ObjectIDFromHex(sess.TeamID)
	if err != nil {
		jsonapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Teams.GetByID(ctx, oid)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, t)
}

// HandleGet serves GET /api/team/{id}. The path ID must match the session's
// team; the ownership check runs before any lookup so a foreign token
// learns nothing about whether the target exists.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.ownedID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Teams.GetByID(ctx, oid)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, t)
}

// RosterLeaderInput is the editable leader block of a roster edit.
type RosterLeaderInput struct {
	Name        string `json:"name"`
	College     string `json:"college"`
	Department  string `json:"department"`
	City        string `json:"city"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type RosterMemberInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// RosterRequest is the body of a roster edit, shared with the admin editor.
type RosterRequest struct {
	TeamLeader  RosterLeaderInput   `json:"teamLeader"`
	TeamMembers []RosterMemberInput `json:"teamMembers"`
}

type updateResponse struct {
	Message string       `json:"message"`
	Team    *models.Team `json:"team"`
}

// HandleUpdate serves PUT /api/team/{id}: the leader's self-edit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.ownedID(w, r)
	if !ok {
		return
	}

	var req RosterRequest
	if err := jsonapi.Decode(w, r, &req); err != nil {
		jsonapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	leader, members, err := CleanRoster(req.TeamLeader, req.TeamMembers)
	if err != nil {
		if fe, ok := weberr.AsFieldError(err); ok {
			jsonapi.FieldError(w, fe.Field, fe.Error())
			return
		}
		jsonapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Teams.UpdateRoster(ctx, oid, leader, members)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	jsonapi.Write(w, http.StatusOK, updateResponse{
		Message: "Team updated successfully",
		Team:    updated,
	})
}

// CleanRoster normalizes, sanitizes, and validates a roster edit. Shared
// with the admin editor, which applies the same rules without the
// ownership restriction.
func CleanRoster(l RosterLeaderInput, ms []RosterMemberInput) (teamstore.LeaderFields, []models.TeamMember, error) {
	leader := teamstore.LeaderFields{
		Name:        sanitize.Text(normalize.Text(l.Name)),
		College:     sanitize.Text(normalize.Text(l.College)),
		Department:  sanitize.Text(normalize.Text(l.Department)),
		City:        sanitize.Text(normalize.Text(l.City)),
		PhoneNumber: normalize.Phone(l.PhoneNumber),
		Email:       normalize.Email(l.Email),
	}
	if err := inputval.Leader(leader); err != nil {
		return teamstore.LeaderFields{}, nil, err
	}

	members := make([]models.TeamMember, 0, len(ms))
	for _, m := range ms {
		members = append(members, models.TeamMember{
			Name:        sanitize.Text(normalize.Text(m.Name)),
			Email:       normalize.Email(m.Email),
			PhoneNumber: normalize.Phone(m.PhoneNumber),
		})
	}
	if err := inputval.Members(members); err != nil {
		return teamstore.LeaderFields{}, nil, err
	}

	return leader, members, nil
}

// ownedID extracts the path ID and enforces that it matches the session's
// team. The permission failure is reported regardless of whether the
// target record exists.
func (h *Handler) ownedID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	sess, ok := auth.CurrentLeader(r)
	if !ok {
		jsonapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}

	id := chi.URLParam(r, "id")
	if id != sess.TeamID {
		jsonapi.Error(w, http.StatusForbidden, weberr.ErrForbidden.Error())
		return primitive.NilObjectID, false
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		jsonapi.Error(w, http.StatusBadRequest, "invalid team id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, weberr.ErrNotFound) {
		jsonapi.Error(w, http.StatusNotFound, weberr.ErrNotFound.Error())
		return
	}
	h.Log.Error("team: store operation failed", zap.Error(err))
	jsonapi.Error(w, http.StatusInternalServerError, "Server error")
}
