package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Popularity tiers a book may carry.
const (
	PopularityLow    = "Low"
	PopularityMedium = "Medium"
	PopularityHigh   = "High"
)

// Book is a catalog entry describing a purchasable/readable item.
type Book struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Category        string             `bson:"category" json:"category"`
	CoverURL        string             `bson:"cover_url" json:"coverUrl"`
	StarRating      float64            `bson:"star_rating" json:"starRating"`
	TotalPage       int                `bson:"total_page" json:"totalPage"`
	Description     string             `bson:"description" json:"description"`
	Reviews         []string           `bson:"reviews" json:"reviews"`
	MRP             float64            `bson:"mrp" json:"mrp"`
	Discount        float64            `bson:"discount" json:"discount"`
	DiscountedPrice float64            `bson:"discounted_price" json:"discountedPrice"`
	Author          string             `bson:"author" json:"author"`
	Publisher       string             `bson:"publisher" json:"publisher"`
	ISBN            string             `bson:"isbn" json:"isbn"`
	Popularity      string             `bson:"popularity" json:"popularity"`
	QRCode          string             `bson:"qr_code,omitempty" json:"qrCode,omitempty"`
	Files           []File             `bson:"files" json:"files"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ApplyPayload rewrites every mutable field from the payload. Update uses
// full-replace semantics, nothing is merged from the prior document.
func (b *Book) ApplyPayload(req *BookPayload) {
	b.Title = req.Title
	b.Category = req.Category
	b.CoverURL = req.CoverPageURL
	b.StarRating = req.StarRating
	b.TotalPage = req.TotalPages
	b.Description = req.Description
	b.Reviews = req.Reviews
	if b.Reviews == nil {
		b.Reviews = []string{}
	}
	b.MRP = req.MRP
	b.Discount = req.Discount
	b.DiscountedPrice = req.DiscountedPrice
	b.Author = req.Author
	b.Publisher = req.Publisher
	b.ISBN = req.ISBNNumber
	b.Popularity = req.Popularity
}
