// internal/app/features/admin/handler.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jwstechnologies/hackportal/internal/app/features/team"
	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
	"github.com/jwstechnologies/hackportal/internal/app/system/mailer"
	"github.com/jwstechnologies/hackportal/internal/app/system/normalize"
	"github.com/jwstechnologies/hackportal/internal/app/system/timeouts"
	"github.com/jwstechnologies/hackportal/internal/app/system/weberr"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
)

// Handler serves the admin console API. The admin identity comes from
// configuration, not the database, so there is no admin store here.
type Handler struct {
	Teams    *teamstore.Store
	Sessions *auth.AdminSessions
	Mail     mailer.Sender
	Log      *zap.Logger

	AdminEmail        string
	AdminPasswordHash string

	// DocsDir holds the event documents attached to approval mail.
	DocsDir string
}

// NewHandler constructs an admin Handler.
func NewHandler(teams *teamstore.Store, sessions *auth.AdminSessions, mail mailer.Sender,
	adminEmail, adminPasswordHash, docsDir string, logger *zap.Logger) *Handler {
	return &Handler{
		Teams:             teams,
		Sessions:          sessions,
		Mail:              mail,
		Log:               logger,
		AdminEmail:        adminEmail,
		AdminPasswordHash: adminPasswordHash,
		DocsDir:           docsDir,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin serves POST /api/admin/login. The single admin credential
// lives in configuration; failures are the same generic 401 whichever
// half was wrong.
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

	if email != h.AdminEmail ||
		h.AdminPasswordHash == "" ||
		!auth.VerifyPassword(h.AdminPasswordHash, req.Password) {
		jsonapi.Error(w, http.StatusUnauthorized, weberr.ErrInvalidCredentials.Error())
		return
	}

	if err := h.Sessions.SignIn(w, r, email); err != nil {
		h.Log.Error("admin: session save failed", zap.Error(err))
		jsonapi.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	jsonapi.Write(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

// HandleLogout serves POST /api/admin/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("admin: session clear failed", zap.Error(err))
	}
	jsonapi.Write(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

type listResponse struct {
	Teams []models.Team `json:"teams"`
	Count int           `json:"count"`
}

// HandleList serves GET /api/admin/teams. An optional ?search= matches
// team ID, leader name, or college.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams, err := h.Teams.List(ctx, r.URL.Query().Get("search"))
	if err != nil {
		h.Log.Error("admin: list teams failed", zap.Error(err))
		jsonapi.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	jsonapi.Write(w, http.StatusOK, listResponse{Teams: teams, Count: len(teams)})
}

// HandleGet serves GET /api/admin/teams/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.pathID(w, r)
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

type updateResponse struct {
	Message string       `json:"message"`
	Team    *models.Team `json:"team"`
}

// HandleUpdate serves PUT /api/admin/teams/{id}. The same validation and
// sanitization applies as on the leader's self-edit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req team.RosterRequest
	if err := jsonapi.Decode(w, r, &req); err != nil {
		jsonapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	leader, members, err := team.CleanRoster(req.TeamLeader, req.TeamMembers)
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

// HandleDelete serves DELETE /api/admin/teams/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Teams.Delete(ctx, oid); err != nil {
		h.writeLookupError(w, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}

type paymentRequest struct {
	Action string `json:"action"`
}

type paymentResponse struct {
	Message string          `json:"message"`
	Payment *models.Payment `json:"payment"`
}

// HandlePayment serves PUT/PATCH /api/admin/payment/{id} with actions
// approve, reject, and markAsSent.
//
// Approval mail is tied to the pending-to-approved transition itself: a
// repeated approve finds the record already approved, changes nothing,
// and sends nothing.
func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if err := jsonapi.Decode(w, r, &req); err != nil {
		jsonapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	action := normalize.Action(req.Action)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := h.Teams.GetByID(ctx, oid)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	if t.Payment == nil {
		jsonapi.Error(w, http.StatusConflict, weberr.ErrNoPayment.Error())
		return
	}

	var (
		changed bool
		message string
	)
	switch action {
	case "approve":
		changed, err = h.Teams.TransitionPayment(ctx, oid,
			[]string{models.PaymentPending}, models.PaymentApproved)
		message = "Payment approved"
	case "reject":
		changed, err = h.Teams.TransitionPayment(ctx, oid,
			[]string{models.PaymentPending}, models.PaymentRejected)
		message = "Payment rejected"
	case "markassent":
		// Re-arms a decided payment so it can be reviewed again.
		changed, err = h.Teams.TransitionPayment(ctx, oid, nil, models.PaymentPending)
		message = "Payment marked as sent"
	default:
		jsonapi.Error(w, http.StatusBadRequest, weberr.ErrInvalidAction.Error())
		return
	}
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	if !changed {
		message = "Payment status unchanged"
	}

	if action == "approve" && changed {
		h.sendApproval(t)
	}

	updated, err := h.Teams.GetByID(ctx, oid)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, paymentResponse{
		Message: message,
		Payment: updated.Payment,
	})
}

// approvalDocs are attached to the approval email when present in DocsDir.
var approvalDocs = []struct {
	filename    string
	contentType string
}{
	{"rules.pdf", "application/pdf"},
	{"schedule.pdf", "application/pdf"},
}

func (h *Handler) sendApproval(t *models.Team) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Mail())
	defer cancel()

	email := mailer.BuildApprovalEmail(mailer.ApprovalEmailData{
		LeaderName: t.Leader.Name,
		TeamID:     t.TeamID,
		Amount:     t.Payment.Amount,
		Roster:     rosterLines(t),
	})
	email.To = t.Leader.Email
	email.Attachments = h.loadAttachments(t.TeamID)

	if err := h.Mail.Send(ctx, email); err != nil {
		h.Log.Error("admin: approval email failed",
			zap.String("team_id", t.TeamID),
			zap.String("to", t.Leader.Email),
			zap.Error(err))
	}
}

// loadAttachments reads the event documents from disk. A missing file is
// logged and skipped; the approval mail still goes out.
func (h *Handler) loadAttachments(teamID string) []mailer.Attachment {
	if h.DocsDir == "" {
		return nil
	}
	var out []mailer.Attachment
	for _, doc := range approvalDocs {
		data, err := os.ReadFile(filepath.Join(h.DocsDir, doc.filename))
		if err != nil {
			h.Log.Warn("admin: approval attachment unavailable",
				zap.String("team_id", teamID),
				zap.String("file", doc.filename),
				zap.Error(err))
			continue
		}
		out = append(out, mailer.Attachment{
			Filename:    doc.filename,
			ContentType: doc.contentType,
			Data:        data,
		})
	}
	return out
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

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
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
	h.Log.Error("admin: store operation failed", zap.Error(err))
	jsonapi.Error(w, http.StatusInternalServerError, "Server error")
}
