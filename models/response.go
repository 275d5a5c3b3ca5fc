package models

import "time"

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Request payloads, one explicit struct per endpoint body.

type FolderCreateRequest struct {
	FolderName string `json:"folderName" validate:"required,folder_name"`
	Category   string `json:"category" validate:"required"`
	FolderType string `json:"folderType" validate:"required"`
}

type FileDetails struct {
	Details string `json:"details" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Sno     string `json:"sNo" validate:"required"`
}

type FileUploadRequest struct {
	FolderName  string      `json:"folderName" validate:"required"`
	FileDetails FileDetails `json:"fileDetails" validate:"required"`
	FileURL     string      `json:"fileUrl" validate:"required,url"`
}

type PresignRequest struct {
	FolderName string `json:"folderName" validate:"required"`
	FileName   string `json:"fileName" validate:"required"`
}

type BookPayload struct {
	Title           string   `json:"title" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	CoverPageURL    string   `json:"coverPageUrl" validate:"required,url"`
	StarRating      float64  `json:"startRating" validate:"gte=0,lte=5"`
	TotalPages      int      `json:"totalPages" validate:"required,gt=0"`
	Description     string   `json:"description" validate:"required"`
	Reviews         []string `json:"reviews"`
	MRP             float64  `json:"mrp" validate:"required,gt=0"`
	Discount        float64  `json:"discount" validate:"gte=0,lte=100"`
	DiscountedPrice float64  `json:"discountedPrice" validate:"required,gt=0"`
	Author          string   `json:"author" validate:"required"`
	Publisher       string   `json:"publisher" validate:"required"`
	ISBNNumber      string   `json:"isbnNumber" validate:"required"`
	Popularity      string   `json:"popularity" validate:"required,popularity"`
}

// BookFileUpload is one file in a server-mediated attachment batch. Content
// is the base64-encoded payload the client sent inline.
type BookFileUpload struct {
	FileName string `json:"fileName" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type BookFilesRequest struct {
	Files []BookFileUpload `json:"files" validate:"required,min=1,dive"`
}

type CheckAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PresignResponse struct {
	URL string `json:"url"`
}
