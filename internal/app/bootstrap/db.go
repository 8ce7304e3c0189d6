// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/indexes"
)

// ConnectDB establishes the MongoDB connection shared by all stores.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates indexes and seeds the team ID counter so the first
// registration allocates from the configured base even on an empty
// database.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase, logger); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	teams := newTeamStore(deps, appCfg)
	if err := teams.SeedTeamCounter(ctx); err != nil {
		return fmt.Errorf("seed team counter: %w", err)
	}

	logger.Info("schema ensured",
		zap.String("team_id_prefix", appCfg.TeamIDPrefix),
		zap.Int("team_id_base", appCfg.TeamIDBase))
	return nil
}

// newTeamStore applies the configured business settings to the store.
func newTeamStore(deps DBDeps, appCfg AppConfig) *teamstore.Store {
	teams := teamstore.New(deps.MongoDatabase)
	if appCfg.TeamIDPrefix != "" {
		teams.IDPrefix = appCfg.TeamIDPrefix
	}
	if appCfg.TeamIDBase > 0 {
		teams.IDBase = int64(appCfg.TeamIDBase)
	}
	if appCfg.FeePerHead > 0 {
		teams.FeePerHead = appCfg.FeePerHead
	}
	return teams
}
