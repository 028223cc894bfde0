package cart

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("carts")}
}

func (r *MongoRepository) GetByUser(ctx context.Context, userID string) (Cart, error) {
	var c Cart
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (r *MongoRepository) Insert(ctx context.Context, c Cart) error {
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *MongoRepository) SetItems(ctx context.Context, userID string, items []Item, updatedAt time.Time) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"items":      items,
		"updated_at": updatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
