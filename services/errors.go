package services

import "errors"

// Error taxonomy surfaced by the services. Controllers translate these to
// response statuses at the request boundary; nothing below retries.
var (
	// ErrValidation covers a required, typed or ranged field missing or
	// malformed on a catalog write. The whole write is rejected.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidIdentifier covers an identifier failing the UUID or
	// non-empty check before any store lookup is made.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidDate covers a date string failing the fixed-format parse.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrCatalogWrite marks the saga failure mode where the object store
	// committed but the catalog write did not. No compensating delete is
	// performed; the object now has no catalog record.
	ErrCatalogWrite = errors.New("object stored but catalog write failed")

	// ErrUploadFailed aborts a whole server-mediated upload batch. No file
	// record from the batch is committed.
	ErrUploadFailed = errors.New("file upload failed")
)
