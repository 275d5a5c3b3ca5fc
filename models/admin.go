package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin and SubAdmin records are looked up by flat email equality only.
type Admin struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role"`
}
