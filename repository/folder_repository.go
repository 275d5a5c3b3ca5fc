package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kitabcloud/models"
)

// ErrNotFound signals absence of a requested document. Lookups return it
// explicitly, absence is never a panic or a raw driver error.
var ErrNotFound = errors.New("document not found")

// FolderRepository persists Folder aggregates in MongoDB. Files live inside
// the folder document, so a folder write or delete always carries them.
type FolderRepository struct {
	collection *mongo.Collection
}

// NewFolderRepository creates a folder repository over the given collection
func NewFolderRepository(collection *mongo.Collection) *FolderRepository {
	return &FolderRepository{collection: collection}
}

// Insert persists a new folder document
func (r *FolderRepository) Insert(ctx context.Context, folder *models.Folder) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, folder); err != nil {
		return fmt.Errorf("failed to insert folder: %v", err)
	}
	return nil
}

// FindByID returns the folder with the given UUID id
func (r *FolderRepository) FindByID(ctx context.Context, id string) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var folder models.Folder
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find folder: %v", err)
	}
	return &folder, nil
}

// FindByName returns the folder with the exact given name
func (r *FolderRepository) FindByName(ctx context.Context, name string) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var folder models.Folder
	err := r.collection.FindOne(ctx, bson.M{"folder_name": name}).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find folder: %v", err)
	}
	return &folder, nil
}

// FindAll returns every folder, newest first
func (r *FolderRepository) FindAll(ctx context.Context) ([]models.Folder, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %v", err)
	}
	defer cursor.Close(ctx)

	folders := []models.Folder{}
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("failed to decode folders: %v", err)
	}
	return folders, nil
}

// Replace overwrites the stored document with the given snapshot, files
// included. Last full replace wins, there is no version check.
func (r *FolderRepository) Replace(ctx context.Context, folder *models.Folder) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	folder.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": folder.ID}, folder)
	if err != nil {
		return fmt.Errorf("failed to replace folder: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the folder document and its embedded files with it
func (r *FolderRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete folder: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
