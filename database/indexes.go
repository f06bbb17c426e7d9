package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraints the order core relies on.
// The (organization_id, order_number) index is what makes duplicate order
// numbers impossible even when two processes race on the same organization.
func EnsureIndexes(ctx context.Context) error {
	orderIndexes := OpenCollection(Client, "order").Indexes()
	if _, err := orderIndexes.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "order_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	tableIndexes := OpenCollection(Client, "table").Indexes()
	if _, err := tableIndexes.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "table_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := tableIndexes.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "access_token", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	userIndexes := OpenCollection(Client, "user").Indexes()
	if _, err := userIndexes.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return nil
}
