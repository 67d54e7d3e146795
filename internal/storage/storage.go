// Package storage owns the MongoDB connection for the whole process.
// Every other component borrows the database handle from here; only the
// lifecycle owner may open or close it.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config holds the MongoDB connection settings.
type Config struct {
	// URL is the connection string (e.g., mongodb://localhost:27017)
	URL string
	// Database is the database name (default: blogapi)
	Database string
}

// Mongo wraps the client and database handle.
type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect opens a MongoDB connection and verifies it with a ping.
// The caller must call Close to release the connection.
func Connect(ctx context.Context, cfg Config) (*Mongo, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("MongoDB URL is required")
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = "blogapi"
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Mongo{
		client:   client,
		database: client.Database(dbName),
	}, nil
}

// Database returns the underlying *mongo.Database for direct access.
func (m *Mongo) Database() *mongo.Database {
	return m.database
}

// Client returns the underlying *mongo.Client for direct access.
func (m *Mongo) Client() *mongo.Client {
	return m.client
}

// Drop irreversibly removes every collection in the database. It returns
// only after the server has acknowledged the drop.
func (m *Mongo) Drop(ctx context.Context) error {
	if err := m.database.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop database %q: %w", m.database.Name(), err)
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}
