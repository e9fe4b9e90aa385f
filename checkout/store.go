package checkout

import (
	"context"
	"errors"

	"vastra/db"
	"vastra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the Mongo-backed StockFinder plus the inventory reservation
// primitives order placement needs.
type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) FindStock(ctx context.Context, stockID, productID string) (*models.Stock, error) {
	var stock models.Stock
	err := db.StockCollection.FindOne(ctx, bson.M{
		"stockid":   stockID,
		"productid": productID,
	}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// Reserve decrements the stock's quantity only if enough remains
// (decrement-if-sufficient). Returns false when the conditional filter matched
// nothing, i.e. a concurrent checkout got there first.
func (s *Store) Reserve(ctx context.Context, stockID string, qty int) (bool, error) {
	res, err := db.StockCollection.UpdateOne(ctx,
		bson.M{"stockid": stockID, "quantity": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"quantity": -qty}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// Release gives a reservation back, compensating a failed multi-line reserve.
func (s *Store) Release(ctx context.Context, stockID string, qty int) error {
	_, err := db.StockCollection.UpdateOne(ctx,
		bson.M{"stockid": stockID},
		bson.M{"$inc": bson.M{"quantity": qty}},
	)
	return err
}
