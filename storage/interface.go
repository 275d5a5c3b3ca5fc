package storage

import (
	"context"
	"time"
)

// TTLs for the URL broker. Expired URLs fail at use time with whatever error
// the transport produces; nothing here retries or renews them.
const (
	UploadURLTTL   = 5 * time.Minute
	CoverURLTTL    = 1 * time.Minute
	DownloadURLTTL = 1 * time.Hour
)

// ObjectStore is the contract the synchronizer and the URL broker consume.
// Keys address one object each; a trailing slash key acts as a folder marker.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// URL operations: each URL is valid only for the given key, the implied
	// method (PUT for upload, GET for download) and the expiry window.
	PresignUpload(key string, expiry time.Duration) (string, error)
	PresignDownload(key string, expiry time.Duration) (string, error)

	HealthCheck(ctx context.Context) error
}

// StorageError represents storage-specific errors
type StorageError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
}

func (e *StorageError) Error() string {
	return e.Message
}

// NewStorageError creates a new storage error
func NewStorageError(provider, code, message, key string) *StorageError {
	return &StorageError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Key:      key,
	}
}
