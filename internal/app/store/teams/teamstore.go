// Package teamstore wraps the teams collection: registration inserts,
// leader credential lookups, roster updates, payment transitions, and the
// team-ID sequence.
package teamstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jwstechnologies/hackportal/internal/app/system/weberr"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
)

// Defaults for the human-readable team identifier space.
const (
	DefaultIDPrefix = "HIT"
	DefaultIDBase   = 101
)

const counterID = "team_id"

// ErrDuplicateTeamID surfaces the unique-index backstop on team_id. With
// the atomic counter this should not happen; seeing it means someone wrote
// an identifier outside the allocator.
var ErrDuplicateTeamID = errors.New("a team with this team ID already exists")

// Store provides access to the teams and counters collections.
type Store struct {
	teams    *mongo.Collection
	counters *mongo.Collection

	// IDPrefix and IDBase define the identifier space (HIT101, HIT102, …).
	IDPrefix string
	IDBase   int64

	// FeePerHead is the registration fee per participant in currency units.
	FeePerHead int
}

// New builds a Store with the default identifier space and fee.
func New(db *mongo.Database) *Store {
	return &Store{
		teams:      db.Collection("teams"),
		counters:   db.Collection("counters"),
		IDPrefix:   DefaultIDPrefix,
		IDBase:     DefaultIDBase,
		FeePerHead: 200,
	}
}

// excludePassword keeps the leader's hash out of every read that does not
// explicitly need it.
var excludePassword = bson.M{"team_leader.password": 0}

/* ───────────────────────── identifier allocation ───────────────────────── */

// ParseTeamNumber extracts the numeric suffix of a team identifier.
// Identifiers that don't match the prefix pattern report ok=false and are
// treated as absent: only this allocator ever writes them, so an unparseable
// value is a legacy artifact, not data loss.
func ParseTeamNumber(prefix, teamID string) (int64, bool) {
	if !strings.HasPrefix(teamID, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(teamID, prefix), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// SeedTeamCounter initializes the allocator document if it does not exist,
// starting from the highest identifier already in the teams collection so
// deployments that predate the counter keep their sequence. The first
// identifier allocated on an empty store is IDBase.
func (s *Store) SeedTeamCounter(ctx context.Context) error {
	err := s.counters.FindOne(ctx, bson.M{"_id": counterID}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	// seq holds the last allocated number; the next $inc hands out seq+1.
	seq := s.IDBase - 1

	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"team_id": 1})
	var last struct {
		TeamID string `bson:"team_id"`
	}
	switch err := s.teams.FindOne(ctx, bson.M{}, opts).Decode(&last); err {
	case nil:
		if n, ok := ParseTeamNumber(s.IDPrefix, last.TeamID); ok && n > seq {
			seq = n
		}
	case mongo.ErrNoDocuments:
		// empty store, start from the base
	default:
		return err
	}

	_, err = s.counters.InsertOne(ctx, bson.M{"_id": counterID, "seq": seq})
	if err != nil && !wafflemongo.IsDup(err) {
		return err
	}
	return nil
}

// NextTeamID atomically allocates the next identifier. Safe under
// concurrent registrations: the $inc is a single server-side operation.
func (s *Store) NextTeamID(ctx context.Context) (string, error) {
	for attempt := 0; ; attempt++ {
		var doc struct {
			Seq int64 `bson:"seq"`
		}
		err := s.counters.FindOneAndUpdate(ctx,
			bson.M{"_id": counterID},
			bson.M{"$inc": bson.M{"seq": 1}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
		if err == nil {
			return fmt.Sprintf("%s%d", s.IDPrefix, doc.Seq), nil
		}
		if err != mongo.ErrNoDocuments || attempt > 0 {
			return "", err
		}
		// counter missing (fresh database): seed and retry once
		if err := s.SeedTeamCounter(ctx); err != nil {
			return "", err
		}
	}
}

/* ───────────────────────────── create / read ───────────────────────────── */

// Create inserts a new team record. TeamID must already be allocated.
// Derived fields (CI variants, team size, timestamps, payment defaults) are
// computed here rather than trusted from the caller.
func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	t.ID = primitive.NewObjectID()
	t.Leader.NameCI = text.Fold(t.Leader.Name)
	t.Leader.CollegeCI = text.Fold(t.Leader.College)
	t.Leader.EmailCI = text.Fold(t.Leader.Email)
	t.Leader.TeamSize = len(t.Members) + 1

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if t.Payment != nil {
		if t.Payment.Status == "" {
			t.Payment.Status = models.PaymentPending
		}
		if t.Payment.UpdatedAt.IsZero() {
			t.Payment.UpdatedAt = now
		}
	}

	if _, err := s.teams.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeamID
		}
		return models.Team{}, err
	}
	return t, nil
}

// GetByID loads a team by ObjectID without the password hash.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var t models.Team
	err := s.teams.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(excludePassword)).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, weberr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByTeamID loads a team by its human-readable identifier.
func (s *Store) GetByTeamID(ctx context.Context, teamID string) (*models.Team, error) {
	var t models.Team
	err := s.teams.FindOne(ctx, bson.M{"team_id": teamID},
		options.FindOne().SetProjection(excludePassword)).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, weberr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetLeaderCredentials fetches the team whose leader email matches,
// explicitly including the password hash. Email matching is exact:
// rewriting case here would change login behavior for existing records.
func (s *Store) GetLeaderCredentials(ctx context.Context, email string) (*models.Team, error) {
	proj := options.FindOne().SetProjection(bson.M{
		"team_id":     1,
		"team_leader": 1,
		"created_at":  1,
	})
	var t models.Team
	err := s.teams.FindOne(ctx, bson.M{"team_leader.email": email}, proj).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, weberr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns teams newest-first. A non-empty search term matches the
// folded leader name, college, or the team ID itself.
func (s *Store) List(ctx context.Context, search string) ([]models.Team, error) {
	filter := bson.M{}
	if q := strings.TrimSpace(search); q != "" {
		pat := primitive.Regex{Pattern: regexp.QuoteMeta(text.Fold(q))}
		idPat := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = []bson.M{
			{"team_leader.name_ci": pat},
			{"team_leader.college_ci": pat},
			{"team_id": idPat},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(excludePassword)
	cur, err := s.teams.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

/* ──────────────────────────── update / delete ──────────────────────────── */

// LeaderFields are the editable leader fields. All are required; the store
// trusts callers to have validated them.
type LeaderFields struct {
	Name        string
	College     string
	Department  string
	City        string
	PhoneNumber string
	Email       string
}

// UpdateRoster overwrites the leader's editable fields and the full member
// list, recomputing team size from the member count regardless of what the
// caller declared. While the payment is still pending, the fee is
// recomputed too so the amount invariant holds across edits; settled
// payments keep their historical amount.
func (s *Store) UpdateRoster(ctx context.Context, id primitive.ObjectID, leader LeaderFields, members []models.TeamMember) (*models.Team, error) {
	if members == nil {
		members = []models.TeamMember{}
	}
	teamSize := len(members) + 1

	set := bson.M{
		"team_leader.name":         leader.Name,
		"team_leader.name_ci":      text.Fold(leader.Name),
		"team_leader.college":      leader.College,
		"team_leader.college_ci":   text.Fold(leader.College),
		"team_leader.department":   leader.Department,
		"team_leader.city":         leader.City,
		"team_leader.phone_number": leader.PhoneNumber,
		"team_leader.email":        leader.Email,
		"team_leader.email_ci":     text.Fold(leader.Email),
		"team_leader.team_size":    teamSize,
		"team_members":             members,
		"updated_at":               time.Now().UTC(),
	}

	var updated models.Team
	err := s.teams.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(excludePassword),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, weberr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if updated.Payment != nil && updated.Payment.Status == models.PaymentPending {
		amount := teamSize * s.FeePerHead
		if updated.Payment.Amount != amount {
			_, err := s.teams.UpdateOne(ctx,
				bson.M{"_id": id, "payment.status": models.PaymentPending},
				bson.M{"$set": bson.M{"payment.amount": amount}})
			if err != nil {
				return nil, err
			}
			updated.Payment.Amount = amount
		}
	}

	return &updated, nil
}

// Delete removes a team record. Only the explicit administrative delete
// calls this; no other workflow removes records.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.teams.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return weberr.ErrNotFound
	}
	return nil
}

/* ─────────────────────────── payment lifecycle ─────────────────────────── */

// TransitionPayment moves payment.status to the target state and stamps the
// transition time. When from is non-empty the write is conditional on the
// current status, so two concurrent identical transitions cannot both win;
// changed reports whether this call performed the transition. Teams without
// a payment block never match.
func (s *Store) TransitionPayment(ctx context.Context, id primitive.ObjectID, from []string, to string) (bool, error) {
	filter := bson.M{"_id": id, "payment": bson.M{"$exists": true}}
	if len(from) > 0 {
		filter["payment.status"] = bson.M{"$in": from}
	}

	now := time.Now().UTC()
	res, err := s.teams.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"payment.status":     to,
		"payment.updated_at": now,
		"updated_at":         now,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
