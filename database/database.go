package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"kitabcloud/config"
)

// Collection names as constants to prevent typos
const (
	FoldersCollection   = "folders"
	BooksCollection     = "books"
	AdminsCollection    = "admins"
	SubAdminsCollection = "subadmins"
)

// Manager owns the MongoDB client for the process. It is constructed once at
// startup and handed to the components that need collections; there is no
// package-level connection state.
type Manager struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.Config
}

// NewManager creates a new database manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{config: cfg}
}

// Connect establishes the MongoDB connection and verifies it with a ping.
// A failed connection is fatal to startup, the caller aborts.
func (m *Manager) Connect(ctx context.Context) error {
	clientOptions := options.Client().
		ApplyURI(m.config.MongoURI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	m.client = client
	m.database = client.Database(m.config.DBName)

	logrus.WithField("database", m.config.DBName).Info("Connected to MongoDB")
	return nil
}

// Close disconnects from MongoDB
func (m *Manager) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %v", err)
	}
	logrus.Info("Disconnected from MongoDB")
	return nil
}

// Collection returns a handle to a named collection
func (m *Manager) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// Ping checks the database connection
func (m *Manager) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("database client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

// CreateIndexes creates the indexes the lookup paths depend on: folders are
// located by exact name, books by ISBN, admins by email.
func (m *Manager) CreateIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	folderIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "folder_name", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := m.Collection(FoldersCollection).Indexes().CreateMany(ctx, folderIndexes); err != nil {
		return fmt.Errorf("failed to create folder indexes: %v", err)
	}

	bookIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "isbn", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := m.Collection(BooksCollection).Indexes().CreateMany(ctx, bookIndexes); err != nil {
		return fmt.Errorf("failed to create book indexes: %v", err)
	}

	for _, name := range []string{AdminsCollection, SubAdminsCollection} {
		adminIndexes := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		}
		if _, err := m.Collection(name).Indexes().CreateMany(ctx, adminIndexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %v", name, err)
		}
	}

	logrus.Info("Database indexes created")
	return nil
}
