package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kitabcloud/models"
	"kitabcloud/repository"
)

// fakeBookStore is an in-memory BookStore recording every call.
type fakeBookStore struct {
	books     map[primitive.ObjectID]*models.Book
	insertErr error
	calls     []string
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: make(map[primitive.ObjectID]*models.Book)}
}

func (s *fakeBookStore) Insert(_ context.Context, book *models.Book) error {
	s.calls = append(s.calls, "insert")
	if s.insertErr != nil {
		return s.insertErr
	}
	book.ID = primitive.NewObjectID()
	clone := *book
	s.books[book.ID] = &clone
	return nil
}

func (s *fakeBookStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	s.calls = append(s.calls, "find_by_id")
	book, ok := s.books[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *book
	clone.Files = append([]models.File(nil), book.Files...)
	return &clone, nil
}

func (s *fakeBookStore) FindByISBN(_ context.Context, isbn string) (*models.Book, error) {
	s.calls = append(s.calls, "find_by_isbn")
	for _, book := range s.books {
		if book.ISBN == isbn {
			clone := *book
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeBookStore) FindAll(_ context.Context) ([]models.Book, error) {
	s.calls = append(s.calls, "find_all")
	all := []models.Book{}
	for _, book := range s.books {
		all = append(all, *book)
	}
	return all, nil
}

func (s *fakeBookStore) Replace(_ context.Context, book *models.Book) error {
	s.calls = append(s.calls, "replace")
	if _, ok := s.books[book.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *book
	s.books[book.ID] = &clone
	return nil
}

func (s *fakeBookStore) DeleteByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	s.calls = append(s.calls, "delete_by_id")
	book, ok := s.books[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.books, id)
	return book, nil
}

func validBookPayload() *models.BookPayload {
	return &models.BookPayload{
		Title:           "The Go Programming Language",
		Category:        "Programming",
		CoverPageURL:    "https://bucket.example.com/covers/gopl.jpg",
		StarRating:      4.5,
		TotalPages:      380,
		Description:     "A reference on Go.",
		Reviews:         []string{"great"},
		MRP:             599,
		Discount:        10,
		DiscountedPrice: 539,
		Author:          "Donovan & Kernighan",
		Publisher:       "Addison-Wesley",
		ISBNNumber:      "978-0134190440",
		Popularity:      models.PopularityHigh,
	}
}

func TestCreateBook(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store, &fakeObjectStore{}, "https://kitab.example.com")

	book, err := svc.CreateBook(context.Background(), validBookPayload())
	require.NoError(t, err)

	assert.False(t, book.ID.IsZero())
	assert.Equal(t, "The Go Programming Language", book.Title)
	assert.Equal(t, models.PopularityHigh, book.Popularity)
	assert.Empty(t, book.Files)
	assert.True(t, strings.HasPrefix(book.QRCode, "data:image/png;base64,"),
		"QR code stored as a PNG data URI")

	// The data URI payload decodes to real bytes.
	_, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(book.QRCode, "data:image/png;base64,"))
	assert.NoError(t, err)
}

func TestCreateBookStarRatingOutOfRange(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store, &fakeObjectStore{}, "https://kitab.example.com")

	for _, rating := range []float64{-1, 5.5, 100} {
		payload := validBookPayload()
		payload.StarRating = rating

		_, err := svc.CreateBook(context.Background(), payload)
		assert.ErrorIs(t, err, ErrValidation, "star rating %v", rating)
	}

	books, err := svc.GetBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books, "no document persisted on validation failure")
}

func TestCreateBookRequiredFields(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store, &fakeObjectStore{}, "https://kitab.example.com")

	mutations := map[string]func(*models.BookPayload){
		"title":      func(p *models.BookPayload) { p.Title = "" },
		"category":   func(p *models.BookPayload) { p.Category = "" },
		"coverUrl":   func(p *models.BookPayload) { p.CoverPageURL = "" },
		"author":     func(p *models.BookPayload) { p.Author = "" },
		"publisher":  func(p *models.BookPayload) { p.Publisher = "" },
		"isbn":       func(p *models.BookPayload) { p.ISBNNumber = "" },
		"popularity": func(p *models.BookPayload) { p.Popularity = "Viral" },
		"mrp":        func(p *models.BookPayload) { p.MRP = 0 },
	}

	for field, mutate := range mutations {
		payload := validBookPayload()
		mutate(payload)

		_, err := svc.CreateBook(context.Background(), payload)
		assert.ErrorIs(t, err, ErrValidation, "field %s", field)
	}
	assert.Empty(t, store.books)
}

func TestUpdateBookFullReplace(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store, &fakeObjectStore{}, "https://kitab.example.com")

	created, err := svc.CreateBook(context.Background(), validBookPayload())
	require.NoError(t, err)

	payload := validBookPayload()
	payload.Title = "The Go Programming Language, 2nd Edition"
	payload.Reviews = nil
	payload.Discount = 0
	payload.DiscountedPrice = 599
	payload.ISBNNumber = "978-0139999999"

	updated, err := svc.UpdateBook(context.Background(), created.ID.Hex(), payload)
	require.NoError(t, err)

	assert.Equal(t, "The Go Programming Language, 2nd Edition", updated.Title)
	assert.Equal(t, []string{}, updated.Reviews, "omitted reviews default to empty, not preserved")
	assert.Zero(t, updated.Discount)
	assert.Equal(t, "978-0139999999", updated.ISBN)
	assert.NotEqual(t, created.QRCode, updated.QRCode, "QR re-derived from the new ISBN")
}

func TestUpdateBookMissingRequiredFieldRejected(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store, &fakeObjectStore{}, "https://kitab.example.com")

	created, err := svc.CreateBook(context.Background(), validBookPayload())
	require.NoError(t, err)

	payload := validBookPayload()
	payload.Title = ""

	_, err = svc.UpdateBook(context.Background(), created.ID.Hex(), payload)
	assert.ErrorIs(t, err, ErrValidation, "a missing title is rejected, not preserved")

	current, err := svc.GetBook(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.Title, current.Title)
}

func TestBookIdentifierValidation(t *testing.T) {
	svc := NewBookService(newFakeBookStore(), &fakeObjectStore{}, "https://kitab.example.com")

	_, err := svc.GetBook(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = svc.DeleteBook(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = svc.DeleteBook(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetBookByISBN(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store, &fakeObjectStore{}, "https://kitab.example.com")

	created, err := svc.CreateBook(context.Background(), validBookPayload())
	require.NoError(t, err)

	found, err := svc.GetBookByISBN(context.Background(), created.ISBN)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetBookByISBN(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestAddBookFiles(t *testing.T) {
	var puts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		atomic.AddInt32(&puts, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := newFakeBookStore()
	objects := &fakeObjectStore{presignBase: server.URL}
	svc := NewBookService(store, objects, "https://kitab.example.com")

	created, err := svc.CreateBook(context.Background(), validBookPayload())
	require.NoError(t, err)

	updated, err := svc.AddBookFiles(context.Background(), created.ID.Hex(), &models.BookFilesRequest{
		Files: []models.BookFileUpload{
			{FileName: "sample.pdf", MimeType: "application/pdf", Content: base64.StdEncoding.EncodeToString([]byte("pdf bytes"))},
			{FileName: "notes.txt", MimeType: "text/plain", Content: base64.StdEncoding.EncodeToString([]byte("notes"))},
		},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&puts), "one PUT per file")
	require.Len(t, updated.Files, 2)
	assert.Equal(t, "sample.pdf", updated.Files[0].Name)
	assert.Equal(t, "notes.txt", updated.Files[1].Name)
}

func TestAddBookFilesAbortsWholeBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := newFakeBookStore()
	objects := &fakeObjectStore{presignBase: server.URL}
	svc := NewBookService(store, objects, "https://kitab.example.com")

	created, err := svc.CreateBook(context.Background(), validBookPayload())
	require.NoError(t, err)

	// Second descriptor carries an undecodable payload.
	_, err = svc.AddBookFiles(context.Background(), created.ID.Hex(), &models.BookFilesRequest{
		Files: []models.BookFileUpload{
			{FileName: "sample.pdf", MimeType: "application/pdf", Content: base64.StdEncoding.EncodeToString([]byte("pdf bytes"))},
			{FileName: "broken.bin", MimeType: "application/octet-stream", Content: "%%not-base64%%"},
		},
	})
	assert.ErrorIs(t, err, ErrUploadFailed)

	current, err := svc.GetBook(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, current.Files, "no record from a failed batch is committed")
}

func TestAddBookFilesPresignFailure(t *testing.T) {
	store := newFakeBookStore()
	objects := &fakeObjectStore{presignErr: errors.New("signing key unavailable")}
	svc := NewBookService(store, objects, "https://kitab.example.com")

	created, err := svc.CreateBook(context.Background(), validBookPayload())
	require.NoError(t, err)

	_, err = svc.AddBookFiles(context.Background(), created.ID.Hex(), &models.BookFilesRequest{
		Files: []models.BookFileUpload{
			{FileName: "sample.pdf", MimeType: "application/pdf", Content: base64.StdEncoding.EncodeToString([]byte("x"))},
		},
	})
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestDetailPageURL(t *testing.T) {
	svc := NewBookService(newFakeBookStore(), &fakeObjectStore{}, "https://kitab.example.com")
	assert.Equal(t, "https://kitab.example.com/bookdetails/978-0134190440",
		svc.DetailPageURL("978-0134190440"))
}
