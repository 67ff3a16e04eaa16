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
)

// ConnectDB establishes the MongoDB connection used by every store.
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
		CongHubMongoClient:   client,
		CongHubMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the stores rely on:
//
//   - users.email_ci is unique where present, the membership and lookup
//     key; pocket sub-accounts carry no email, so the index is partial
//   - congregations country_code+cong_number is unique, backing the
//     duplicate-congregation check
//   - one open congregation request per email, enforced with a partial
//     unique index
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.CongHubMongoDatabase

	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "email_ci", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
		{
			Keys: bson.D{{Key: "cong_id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection("congregations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "country_code", Value: 1}, {Key: "cong_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("congregations indexes: %w", err)
	}

	_, err = db.Collection("congregation_requests").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email_ci", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "request_open", Value: true}}),
	})
	if err != nil {
		return fmt.Errorf("congregation_requests indexes: %w", err)
	}

	_, err = db.Collection("audit_events").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("audit_events indexes: %w", err)
	}

	logger.Info("database schema ensured")
	return nil
}
