package controllers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"kitabcloud/models"
	"kitabcloud/services"
	"kitabcloud/utils"
)

type BookController struct {
	bookService *services.BookService
}

func NewBookController(bookService *services.BookService) *BookController {
	return &BookController{bookService: bookService}
}

// GetBooks returns all catalog entries
func (bc *BookController) GetBooks(c *gin.Context) {
	books, err := bc.bookService.GetBooks(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve books")
		return
	}

	utils.SuccessResponse(c, "Books retrieved successfully", books)
}

// GetBook returns one book by id
func (bc *BookController) GetBook(c *gin.Context) {
	book, err := bc.bookService.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve book")
		return
	}

	utils.SuccessResponse(c, "Book retrieved successfully", book)
}

// CreateBook validates and persists a new book with its QR code
func (bc *BookController) CreateBook(c *gin.Context) {
	var req models.BookPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	book, err := bc.bookService.CreateBook(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create book")
		return
	}

	utils.CreatedResponse(c, "Book added successfully", book)
}

// UpdateBook replaces every mutable field of a book from the payload
func (bc *BookController) UpdateBook(c *gin.Context) {
	var req models.BookPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	book, err := bc.bookService.UpdateBook(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to update book")
		return
	}

	utils.SuccessResponse(c, "Book updated successfully", book)
}

// DeleteBook removes a book by id
func (bc *BookController) DeleteBook(c *gin.Context) {
	book, err := bc.bookService.DeleteBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to delete book")
		return
	}

	utils.SuccessResponse(c, "Book deleted successfully", book)
}

// GetCoverPresignedURL returns a short-lived upload URL for a cover image
func (bc *BookController) GetCoverPresignedURL(c *gin.Context) {
	var req models.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	url, err := bc.bookService.PresignCoverUpload(req.FolderName, req.FileName)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to generate presigned URL", err)
		return
	}

	utils.SuccessResponse(c, "Presigned URL generated", models.PresignResponse{URL: url})
}

// AddBookFiles uploads a batch of attachments and appends their records
func (bc *BookController) AddBookFiles(c *gin.Context) {
	var req models.BookFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	book, err := bc.bookService.AddBookFiles(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to upload book files")
		return
	}

	utils.SuccessResponse(c, "Files added successfully", book)
}

// DetailPage renders the HTML detail page for a book, keyed by ISBN. This is
// the page the book's QR code links to.
func (bc *BookController) DetailPage(c *gin.Context) {
	book, err := bc.bookService.GetBookByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve book")
		return
	}

	c.HTML(http.StatusOK, "book_detail.html", gin.H{
		"Book": book,
		// Wrapped so html/template keeps the data URI intact in src
		"QRCode": template.URL(book.QRCode),
	})
}
