// Package indexes declares the MongoDB indexes this app depends on.
//
// EnsureAll runs at startup and is idempotent. The unique index on team_id
// is the last-resort safety net behind the counter-based allocator; losing
// it would let an out-of-band writer mint a duplicate identifier silently.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates the indexes for every collection the app touches.
// Errors are aggregated so startup can fail fast with everything visible.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureTeams(ctx, db, logger); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureTeams(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	coll := db.Collection("teams")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "team_id", Value: 1}},
			Options: options.Index().SetName("team_id_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "team_leader.email", Value: 1}},
			Options: options.Index().SetName("leader_email"),
		},
		{
			// admin listing is always newest-first
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "team_leader.name_ci", Value: 1}},
			Options: options.Index().SetName("leader_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "team_leader.college_ci", Value: 1}},
			Options: options.Index().SetName("leader_college_ci"),
		},
	}

	for _, m := range indexModels {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// An index with the same keys under a different name or options
			// predates this code; keep it and move on.
			if isOptionsConflict(err) {
				logger.Info("index exists with different options; keeping it",
					zap.String("collection", "teams"),
					zap.String("name", name))
				continue
			}
			return err
		}
		logger.Info("ensured index",
			zap.String("collection", "teams"),
			zap.String("name", name))
	}
	return nil
}

func isOptionsConflict(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "IndexOptionsConflict") ||
		strings.Contains(s, "IndexKeySpecsConflict")
}
