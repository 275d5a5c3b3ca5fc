package routes

import (
	"github.com/gin-gonic/gin"

	"kitabcloud/controllers"
)

func BookRoutes(r *gin.Engine, bookController *controllers.BookController) {
	r.GET("/getbooks", bookController.GetBooks)
	r.POST("/uploadbooks", bookController.CreateBook)
	r.PUT("/updatebook/:id", bookController.UpdateBook)
	r.DELETE("/deletebook/:id", bookController.DeleteBook)
	r.POST("/coverpagepresignedurl", bookController.GetCoverPresignedURL)

	// Extended book flows
	r.GET("/books/:id", bookController.GetBook)
	r.POST("/books/:id/files", bookController.AddBookFiles)
	r.GET("/bookdetails/:isbn", bookController.DetailPage)
}
