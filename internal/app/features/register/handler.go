// internal/app/features/register/handler.go
package register

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
	"github.com/jwstechnologies/hackportal/internal/app/system/inputval"
	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
	"github.com/jwstechnologies/hackportal/internal/app/system/mailer"
	"github.com/jwstechnologies/hackportal/internal/app/system/normalize"
	"github.com/jwstechnologies/hackportal/internal/app/system/sanitize"
	"github.com/jwstechnologies/hackportal/internal/app/system/timeouts"
	"github.com/jwstechnologies/hackportal/internal/app/system/weberr"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
)

// Handler implements the registration workflow: validate, allocate a team
// ID, compute the fee, persist, then send the confirmation.
type Handler struct {
	Teams *teamstore.Store
	Mail  mailer.Sender
	Log   *zap.Logger
}

// NewHandler constructs a register Handler.
func NewHandler(teams *teamstore.Store, mail mailer.Sender, logger *zap.Logger) *Handler {
	return &Handler{Teams: teams, Mail: mail, Log: logger}
}

type leaderInput struct {
	Name            string `json:"name"`
	College         string `json:"college"`
	Department      string `json:"department"`
	City            string `json:"city"`
	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	TeamSize        int    `json:"teamSize"` // advisory; recomputed from members
}

type memberInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type registerRequest struct {
	TeamLeader  leaderInput   `json:"teamLeader"`
	TeamMembers []memberInput `json:"teamMembers"`
}

type registerResponse struct {
	Message string `json:"message"`
	TeamID  string `json:"teamId"`
}

// HandleRegister serves POST /api/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := jsonapi.Decode(w, r, &req); err != nil {
		jsonapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.TeamLeader.Password == "" {
		jsonapi.FieldError(w, "password", "password is required")
		return
	}
	if req.TeamLeader.Password != req.TeamLeader.ConfirmPassword {
		jsonapi.Error(w, http.StatusBadRequest, weberr.ErrPasswordMismatch.Error())
		return
	}

	leader := teamstore.LeaderFields{
		Name:        sanitize.Text(normalize.Text(req.TeamLeader.Name)),
		College:     sanitize.Text(normalize.Text(req.TeamLeader.College)),
		Department:  sanitize.Text(normalize.Text(req.TeamLeader.Department)),
		City:        sanitize.Text(normalize.Text(req.TeamLeader.City)),
		PhoneNumber: normalize.Phone(req.TeamLeader.PhoneNumber),
		Email:       normalize.Email(req.TeamLeader.Email),
	}
	if err := inputval.Leader(leader); err != nil {
		writeValidation(w, err)
		return
	}

	members := make([]models.TeamMember, 0, len(req.TeamMembers))
	for _, m := range req.TeamMembers {
		members = append(members, models.TeamMember{
			Name:        sanitize.Text(normalize.Text(m.Name)),
			Email:       normalize.Email(m.Email),
			PhoneNumber: normalize.Phone(m.PhoneNumber),
		})
	}
	if err := inputval.Members(members); err != nil {
		writeValidation(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teamID, err := h.Teams.NextTeamID(ctx)
	if err != nil {
		h.Log.Error("register: team ID allocation failed", zap.Error(err))
		jsonapi.Error(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	hash, err := auth.HashPassword(req.TeamLeader.Password)
	if err != nil {
		h.Log.Error("register: password hash failed", zap.Error(err))
		jsonapi.Error(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	teamSize := len(members) + 1
	team := models.Team{
		TeamID: teamID,
		Leader: models.TeamLeader{
			Name:         leader.Name,
			College:      leader.College,
			Department:   leader.Department,
			City:         leader.City,
			PhoneNumber:  leader.PhoneNumber,
			Email:        leader.Email,
			PasswordHash: hash,
		},
		Members: members,
		Payment: &models.Payment{
			Amount: teamSize * h.Teams.FeePerHead,
			Status: models.PaymentPending,
		},
	}

	created, err := h.Teams.Create(ctx, team)
	if err != nil {
		if errors.Is(err, teamstore.ErrDuplicateTeamID) {
			h.Log.Error("register: duplicate team ID from allocator",
				zap.String("team_id", teamID))
			jsonapi.Error(w, http.StatusConflict, "Registration conflicted, please retry")
			return
		}
		h.Log.Error("register: insert failed", zap.Error(err))
		jsonapi.Error(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	// The record is authoritative from here on: a failed confirmation email
	// is logged, never rolled back.
	h.sendConfirmation(&created)

	jsonapi.Write(w, http.StatusOK, registerResponse{
		Message: "Registration successful",
		TeamID:  created.TeamID,
	})
}

func (h *Handler) sendConfirmation(t *models.Team) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Mail())
	defer cancel()

	email := mailer.BuildRegistrationEmail(mailer.RegistrationEmailData{
		LeaderName: t.Leader.Name,
		TeamID:     t.TeamID,
		TeamSize:   t.Leader.TeamSize,
		Amount:     t.Payment.Amount,
		PaymentRef: t.TeamID,
		Roster:     rosterLines(t),
	})
	email.To = t.Leader.Email

	if err := h.Mail.Send(ctx, email); err != nil {
		h.Log.Error("register: confirmation email failed",
			zap.String("team_id", t.TeamID),
			zap.String("to", t.Leader.Email),
			zap.Error(err))
	}
}

func rosterLines(t *models.Team) []mailer.RosterLine {
	lines := []mailer.RosterLine{{
		Label:       "Leader",
		Name:        t.Leader.Name,
		Email:       t.Leader.Email,
		PhoneNumber: t.Leader.PhoneNumber,
	}}
	for i, m := range t.Members {
		lines = append(lines, mailer.RosterLine{
			Label:       "Member " + strconv.Itoa(i+1),
			Name:        m.Name,
			Email:       m.Email,
			PhoneNumber: m.PhoneNumber,
		})
	}
	return lines
}

func writeValidation(w http.ResponseWriter, err error) {
	if fe, ok := weberr.AsFieldError(err); ok {
		jsonapi.FieldError(w, fe.Field, fe.Error())
		return
	}
	jsonapi.Error(w, http.StatusBadRequest, err.Error())
}
