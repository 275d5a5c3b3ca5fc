package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kitabcloud/models"
	"kitabcloud/storage"
	"kitabcloud/utils"
)

const qrImageSize = 256

// BookStore is the slice of the catalog contract the book flows consume.
type BookStore interface {
	Insert(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*models.Book, error)
	FindAll(ctx context.Context) ([]models.Book, error)
	Replace(ctx context.Context, book *models.Book) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
}

// BookService handles book catalog entries, their QR codes and attached
// files.
type BookService struct {
	books      BookStore
	objects    storage.ObjectStore
	httpClient *http.Client
	appURL     string
}

// NewBookService creates a book service. appURL is the externally reachable
// base the QR detail-page links point at.
func NewBookService(books BookStore, objects storage.ObjectStore, appURL string) *BookService {
	return &BookService{
		books:      books,
		objects:    objects,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		appURL:     appURL,
	}
}

// DetailPageURL returns the canonical detail-page link for an ISBN, the same
// link the QR code encodes.
func (bs *BookService) DetailPageURL(isbn string) string {
	return fmt.Sprintf("%s/bookdetails/%s", bs.appURL, isbn)
}

// CreateBook validates and persists a new book. The QR code encoding the
// detail-page link is generated first; if encoding fails, no book is
// persisted.
func (bs *BookService) CreateBook(ctx context.Context, req *models.BookPayload) (*models.Book, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := time.Now()
	book := &models.Book{
		Files:     []models.File{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	book.ApplyPayload(req)

	qr, err := bs.encodeQR(book.ISBN)
	if err != nil {
		return nil, err
	}
	book.QRCode = qr

	if err := bs.books.Insert(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBooks returns every book in the catalog
func (bs *BookService) GetBooks(ctx context.Context) ([]models.Book, error) {
	return bs.books.FindAll(ctx)
}

// GetBook returns the book with the given id string
func (bs *BookService) GetBook(ctx context.Context, id string) (*models.Book, error) {
	objID, err := parseBookID(id)
	if err != nil {
		return nil, err
	}
	return bs.books.FindByID(ctx, objID)
}

// GetBookByISBN returns the book with the given ISBN
func (bs *BookService) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	if isbn == "" {
		return nil, fmt.Errorf("%w: isbn must not be empty", ErrInvalidIdentifier)
	}
	return bs.books.FindByISBN(ctx, isbn)
}

// UpdateBook rewrites every mutable field of an existing book from the
// payload. Nothing is merged from the prior document; the QR code is
// re-derived from the incoming ISBN.
func (bs *BookService) UpdateBook(ctx context.Context, id string, req *models.BookPayload) (*models.Book, error) {
	objID, err := parseBookID(id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	book, err := bs.books.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	book.ApplyPayload(req)
	qr, err := bs.encodeQR(book.ISBN)
	if err != nil {
		return nil, err
	}
	book.QRCode = qr

	if err := bs.books.Replace(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes the book with the given id
func (bs *BookService) DeleteBook(ctx context.Context, id string) (*models.Book, error) {
	objID, err := parseBookID(id)
	if err != nil {
		return nil, err
	}
	return bs.books.DeleteByID(ctx, objID)
}

// PresignCoverUpload returns a short-lived PUT URL for a cover image
func (bs *BookService) PresignCoverUpload(folderName, fileName string) (string, error) {
	return bs.objects.PresignUpload(folderName+"/"+fileName, storage.CoverURLTTL)
}

// AddBookFiles uploads a batch of files through presigned URLs and appends
// their records to the book. The batch is all-or-nothing: if any presign,
// decode or transmission fails, no record is appended. Objects already
// transmitted before the failure are left behind unreferenced.
func (bs *BookService) AddBookFiles(ctx context.Context, id string, req *models.BookFilesRequest) (*models.Book, error) {
	objID, err := parseBookID(id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	book, err := bs.books.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	records := make([]models.File, 0, len(req.Files))
	for _, upload := range req.Files {
		key := book.ID.Hex() + "/" + upload.FileName
		url, err := bs.objects.PresignUpload(key, storage.UploadURLTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: presign %s: %v", ErrUploadFailed, upload.FileName, err)
		}

		body, err := base64.StdEncoding.DecodeString(upload.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrUploadFailed, upload.FileName, err)
		}

		if err := bs.transmit(ctx, url, upload.MimeType, body); err != nil {
			return nil, fmt.Errorf("%w: transmit %s: %v", ErrUploadFailed, upload.FileName, err)
		}

		records = append(records, models.File{
			ID:        uuid.NewString(),
			Name:      upload.FileName,
			Type:      upload.MimeType,
			Date:      now,
			Sno:       fmt.Sprintf("%d", len(book.Files)+len(records)+1),
			URL:       url,
			CreatedAt: now.Format(time.RFC3339),
		})
	}

	book.Files = append(book.Files, records...)
	if err := bs.books.Replace(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// transmit PUTs the decoded bytes through the presigned URL
func (bs *BookService) transmit(ctx context.Context, url, mimeType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// encodeQR renders the detail-page link as a PNG data URI
func (bs *BookService) encodeQR(isbn string) (string, error) {
	png, err := qrcode.Encode(bs.DetailPageURL(isbn), qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func parseBookID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: book id must be a valid object id", ErrInvalidIdentifier)
	}
	return objID, nil
}
