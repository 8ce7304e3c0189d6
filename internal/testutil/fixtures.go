package testutil

import (
	"context"
	"strconv"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db    *mongo.Database
	teams *teamstore.Store
	t     *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, teams: teamstore.New(db), t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Teams returns a store bound to the test database.
func (f *Fixtures) Teams() *teamstore.Store {
	return f.teams
}

// TeamSpec describes a team fixture. Zero values get sensible defaults.
type TeamSpec struct {
	LeaderName  string
	Email       string
	College     string
	Password    string // hashed before insert; empty leaves no credential
	MemberCount int
	NoPayment   bool // legacy record without a payment block
}

// CreateTeam registers a team through the store so derived fields (team
// ID, CI columns, fee) are produced the same way production does.
func (f *Fixtures) CreateTeam(ctx context.Context, spec TeamSpec) models.Team {
	f.t.Helper()

	if spec.LeaderName == "" {
		spec.LeaderName = "Asha Verma"
	}
	if spec.Email == "" {
		spec.Email = "leader@example.com"
	}
	if spec.College == "" {
		spec.College = "St. Joseph's College"
	}

	var hash string
	if spec.Password != "" {
		var err error
		hash, err = auth.HashPassword(spec.Password)
		if err != nil {
			f.t.Fatalf("hash fixture password: %v", err)
		}
	}

	members := make([]models.TeamMember, 0, spec.MemberCount)
	for i := 0; i < spec.MemberCount; i++ {
		n := strconv.Itoa(i + 1)
		members = append(members, models.TeamMember{
			Name:        "Member " + n,
			Email:       "member" + n + "@example.com",
			PhoneNumber: "9876500000",
		})
	}

	teamID, err := f.teams.NextTeamID(ctx)
	if err != nil {
		f.t.Fatalf("allocate fixture team ID: %v", err)
	}

	team := models.Team{
		TeamID: teamID,
		Leader: models.TeamLeader{
			Name:         spec.LeaderName,
			College:      spec.College,
			Department:   "Computer Science",
			City:         "Tiruchirappalli",
			PhoneNumber:  "9876543210",
			Email:        spec.Email,
			PasswordHash: hash,
		},
		Members: members,
	}
	if !spec.NoPayment {
		team.Payment = &models.Payment{
			Amount: (spec.MemberCount + 1) * f.teams.FeePerHead,
			Status: models.PaymentPending,
		}
	}

	created, err := f.teams.Create(ctx, team)
	if err != nil {
		f.t.Fatalf("create fixture team: %v", err)
	}
	return created
}
