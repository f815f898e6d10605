package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbaye/vsphere-inventory/internal/domain/models"
)

// Repository defines the interface for snapshot storage.
type Repository interface {
	SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error
	LatestSnapshot(ctx context.Context) (*models.InventorySnapshot, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "inventory_snapshots",
	}, nil
}

// SaveSnapshot stores one collected inventory snapshot.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert inventory snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently collected snapshot, or nil when
// none has been stored yet.
func (r *MongoDBRepository) LatestSnapshot(ctx context.Context) (*models.InventorySnapshot, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	opts := options.FindOne().SetSort(bson.D{{Key: "collected_at", Value: -1}})

	var snapshot models.InventorySnapshot
	err := collection.FindOne(ctx, bson.D{}, opts).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}

	return &snapshot, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
