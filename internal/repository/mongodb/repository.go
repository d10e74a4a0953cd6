package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

// Repository defines the interface for forecast persistence.
type Repository interface {
	SaveReport(ctx context.Context, report models.ForecastReport) error
	SaveLogEntry(ctx context.Context, entry models.ForecastLogEntry) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client      *mongo.Client
	dbName      string
	reportsColl string
	logColl     string
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
		client:      client,
		dbName:      dbName,
		reportsColl: "forecast_reports",
		logColl:     "forecast_log",
	}, nil
}

// SaveReport persists a completed forecast report.
func (r *MongoDBRepository) SaveReport(ctx context.Context, report models.ForecastReport) error {
	collection := r.client.Database(r.dbName).Collection(r.reportsColl)
	if _, err := collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert forecast report: %w", err)
	}
	return nil
}

// SaveLogEntry mirrors one forecast log entry. Callers treat failures as
// best-effort; this method only reports them.
func (r *MongoDBRepository) SaveLogEntry(ctx context.Context, entry models.ForecastLogEntry) error {
	collection := r.client.Database(r.dbName).Collection(r.logColl)
	if _, err := collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert forecast log entry: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
