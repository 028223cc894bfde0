package order

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listCap mirrors the catalog's unpaginated listing bound.
const listCap = 1000

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("orders")}
}

func (r *MongoRepository) Insert(ctx context.Context, o Order) error {
	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoRepository) list(ctx context.Context, query bson.M) ([]Order, error) {
	cursor, err := r.col.Find(ctx, query, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoRepository) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) AttachPayment(ctx context.Context, userID, sessionID string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID, "payment_id": nil},
		bson.M{"$set": bson.M{"payment_id": sessionID, "status": StatusProcessing}},
	)
	return err
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
