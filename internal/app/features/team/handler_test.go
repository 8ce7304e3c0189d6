package team_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/jwstechnologies/hackportal/internal/app/features/team"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
	"github.com/jwstechnologies/hackportal/internal/testutil"
)

func TestHandleGetOwn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := team.NewHandler(fx.Teams(), zap.NewNop())

	created := fx.CreateTeam(ctx, testutil.TeamSpec{Password: "pw"})

	req := testutil.WithLeader(httptest.NewRequest("GET", "/api/team", nil),
		created.ID.Hex(), created.Leader.Email)
	rec := httptest.NewRecorder()
	h.HandleGetOwn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got models.Team
	testutil.DecodeJSON(t, rec, &got)
	if got.TeamID != created.TeamID {
		t.Errorf("teamId = %q, want %q", got.TeamID, created.TeamID)
	}
	if got.Leader.PasswordHash != "" {
		t.Error("password hash leaked into the response")
	}
}

func TestHandleGet_ForeignTeamForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := team.NewHandler(fx.Teams(), zap.NewNop())

	mine := fx.CreateTeam(ctx, testutil.TeamSpec{Email: "mine@example.com"})
	other := fx.CreateTeam(ctx, testutil.TeamSpec{Email: "other@example.com"})

	req := httptest.NewRequest("GET", "/api/team/"+other.ID.Hex(), nil)
	req = testutil.WithLeader(req, mine.ID.Hex(), mine.Leader.Email)
	req = testutil.WithChiURLParam(req, "id", other.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestHandleGet_ForeignNonexistentStillForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := team.NewHandler(fx.Teams(), zap.NewNop())

	mine := fx.CreateTeam(ctx, testutil.TeamSpec{})

	// The ownership check must not reveal whether the target exists.
	req := httptest.NewRequest("GET", "/api/team/000000000000000000000000", nil)
	req = testutil.WithLeader(req, mine.ID.Hex(), mine.Leader.Email)
	req = testutil.WithChiURLParam(req, "id", "000000000000000000000000")
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func validRoster() map[string]any {
	return map[string]any{
		"teamLeader": map[string]any{
			"name":        "Asha Verma",
			"college":     "St. Joseph's College",
			"department":  "Computer Science",
			"city":        "Tiruchirappalli",
			"phoneNumber": "9876543210",
			"email":       "asha@example.com",
		},
		"teamMembers": []map[string]any{
			{"name": "Ravi Kumar", "email": "ravi@example.com", "phoneNumber": "9876500001"},
		},
	}
}

func TestHandleUpdate_GrowRosterRecomputesFee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := team.NewHandler(fx.Teams(), zap.NewNop())

	created := fx.CreateTeam(ctx, testutil.TeamSpec{Email: "asha@example.com"})
	if created.Payment.Amount != 200 {
		t.Fatalf("precondition: amount = %d", created.Payment.Amount)
	}

	req := testutil.NewJSONRequest(t, "PUT", "/api/team/"+created.ID.Hex(), validRoster())
	req = testutil.WithLeader(req, created.ID.Hex(), created.Leader.Email)
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Team models.Team `json:"team"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Team.Leader.TeamSize != 2 {
		t.Errorf("TeamSize = %d, want 2", resp.Team.Leader.TeamSize)
	}
	if resp.Team.Payment.Amount != 400 {
		t.Errorf("pending amount = %d, want 400", resp.Team.Payment.Amount)
	}
}

func TestHandleUpdate_ForeignTeamUnchanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := team.NewHandler(fx.Teams(), zap.NewNop())

	mine := fx.CreateTeam(ctx, testutil.TeamSpec{Email: "mine@example.com"})
	other := fx.CreateTeam(ctx, testutil.TeamSpec{Email: "other@example.com"})

	req := testutil.NewJSONRequest(t, "PUT", "/api/team/"+other.ID.Hex(), validRoster())
	req = testutil.WithLeader(req, mine.ID.Hex(), mine.Leader.Email)
	req = testutil.WithChiURLParam(req, "id", other.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	loaded, err := fx.Teams().GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Leader.Email != "other@example.com" {
		t.Error("forbidden update modified the record")
	}
}

func TestHandleUpdate_MissingFieldUnchanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := team.NewHandler(fx.Teams(), zap.NewNop())

	created := fx.CreateTeam(ctx, testutil.TeamSpec{Email: "asha@example.com", MemberCount: 1})

	body := validRoster()
	body["teamLeader"].(map[string]any)["city"] = ""

	req := testutil.NewJSONRequest(t, "PUT", "/api/team/"+created.ID.Hex(), body)
	req = testutil.WithLeader(req, created.ID.Hex(), created.Leader.Email)
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	loaded, err := fx.Teams().GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(loaded.Members) != 1 || loaded.Leader.TeamSize != 2 {
		t.Error("invalid update modified the record")
	}
}
