package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kitabcloud/models"
)

// BookRepository persists Book documents in MongoDB
type BookRepository struct {
	collection *mongo.Collection
}

// NewBookRepository creates a book repository over the given collection
func NewBookRepository(collection *mongo.Collection) *BookRepository {
	return &BookRepository{collection: collection}
}

// Insert persists a new book and assigns its generated id
func (r *BookRepository) Insert(ctx context.Context, book *models.Book) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	book.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("failed to insert book: %v", err)
	}
	return nil
}

// FindByID returns the book with the given id
func (r *BookRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var book models.Book
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book: %v", err)
	}
	return &book, nil
}

// FindByISBN returns the book with the given ISBN string
func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var book models.Book
	err := r.collection.FindOne(ctx, bson.M{"isbn": isbn}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book: %v", err)
	}
	return &book, nil
}

// FindAll returns every book, newest first
func (r *BookRepository) FindAll(ctx context.Context) ([]models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %v", err)
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err = cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %v", err)
	}
	return books, nil
}

// Replace overwrites the stored document with the given snapshot
func (r *BookRepository) Replace(ctx context.Context, book *models.Book) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	book.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": book.ID}, book)
	if err != nil {
		return fmt.Errorf("failed to replace book: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the book document, attached files included
func (r *BookRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var book models.Book
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %v", err)
	}
	return &book, nil
}
