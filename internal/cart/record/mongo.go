package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nithyashree19/electromart/internal/domain"
)

// MongoStore keeps the cart as a single document keyed by recordKey.
type MongoStore struct {
	collection *mongo.Collection
}

type cartDocument struct {
	ID        string            `bson:"_id"`
	Items     []domain.CartItem `bson:"items"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("carts")}
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func (m *MongoStore) Load(ctx context.Context) ([]domain.CartItem, error) {
	var doc cartDocument

	filter := bson.M{"_id": recordKey}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSavedCart
		}
		return nil, fmt.Errorf("failed to load cart record: %w", err)
	}

	return doc.Items, nil
}

func (m *MongoStore) Save(ctx context.Context, items []domain.CartItem) error {
	filter := bson.M{"_id": recordKey}
	update := bson.M{"$set": bson.M{
		"items":      items,
		"updated_at": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save cart record: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context) error {
	filter := bson.M{"_id": recordKey}
	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete cart record: %w", err)
	}
	return nil
}
