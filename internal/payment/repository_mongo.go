package payment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("payment_transactions")}
}

func (r *MongoRepository) Insert(ctx context.Context, t Transaction) error {
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *MongoRepository) GetBySessionID(ctx context.Context, sessionID string) (Transaction, error) {
	var t Transaction
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (r *MongoRepository) SetStatus(ctx context.Context, sessionID, status string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"payment_status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
