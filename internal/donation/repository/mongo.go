package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGateway implements Gateway over a MongoDB database handle.
// Documents get a driver-generated ObjectID; list order is whatever the
// server returns without a sort (natural order).
type MongoGateway struct {
	db *mongo.Database
}

func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{db: db}
}

func (g *MongoGateway) Create(ctx context.Context, collection string, record interface{}) (string, error) {
	res, err := g.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return insertedID(res.InsertedID), nil
}

func (g *MongoGateway) List(ctx context.Context, collection string, limit int64) ([]bson.M, error) {
	out := []bson.M{}
	// Mongo reads a zero limit as "no limit".
	if limit <= 0 {
		return out, nil
	}
	cur, err := g.db.Collection(collection).Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var d bson.M
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func insertedID(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
