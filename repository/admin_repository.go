package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"kitabcloud/models"
)

// AdminRepository reads admin and sub-admin records. Lookups are flat email
// equality, there is no session or token model behind them.
type AdminRepository struct {
	collection *mongo.Collection
}

// NewAdminRepository creates an admin repository over the given collection
func NewAdminRepository(collection *mongo.Collection) *AdminRepository {
	return &AdminRepository{collection: collection}
}

// FindByEmail returns the record with the given email
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %v", err)
	}
	return &admin, nil
}
