package models

import (
	"time"
)

// Folder is a named, categorized container for uploaded files. Its _id is a
// UUID string assigned at creation, never a Mongo ObjectID.
type Folder struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"folder_name" json:"folderName" validate:"required,folder_name"`
	Category  string    `bson:"folder_category" json:"folderCategory" validate:"required"`
	Type      string    `bson:"folder_type" json:"folderType" validate:"required"`
	Sno       int64     `bson:"folder_sno" json:"folderSno"`
	Files     []File    `bson:"files" json:"files"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// File describes one uploaded object's metadata and location. It exists only
// embedded in a parent Folder or Book and is never stored on its own.
type File struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Type      string    `bson:"type" json:"type"`
	Date      time.Time `bson:"date" json:"date"`
	Sno       string    `bson:"s_no" json:"sNo"`
	URL       string    `bson:"url" json:"url"`
	CreatedAt string    `bson:"created_at" json:"createdAt"`
}

// ObjectKey returns the bucket key the file was uploaded under, scoped the
// same way the presigned upload URL was.
func (f *File) ObjectKey(parent string) string {
	return parent + "/" + f.Name
}
