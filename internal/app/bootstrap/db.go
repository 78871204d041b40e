// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/dalemusser/courseforge/internal/app/store/oauthstate"
)

// ConnectDB establishes the MongoDB connection and bundles it into DBDeps.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
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

// EnsureSchema creates the indexes the stores rely on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email_ci", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_users_email_ci"),
			},
		},
		"user_partitions": {
			{
				Keys: bson.D{
					{Key: "course_id", Value: 1},
					{Key: "partition_id", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("idx_partitions_course_pid"),
			},
			{
				Keys: bson.D{
					{Key: "course_id", Value: 1},
					{Key: "name_ci", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("idx_partitions_course_name"),
			},
		},
		"components": {
			{
				Keys:    bson.D{{Key: "locator", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_components_locator"),
			},
			{
				Keys:    bson.D{{Key: "course_id", Value: 1}},
				Options: options.Index().SetName("idx_components_course"),
			},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}

	if err := oauthstate.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("create oauth state indexes: %w", err)
	}

	logger.Info("database indexes ensured")
	return nil
}
