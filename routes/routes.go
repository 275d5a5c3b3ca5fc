package routes

import (
	"github.com/gin-gonic/gin"

	"kitabcloud/controllers"
	"kitabcloud/middleware"
)

// Controllers bundles the constructed controllers route registration wires
// up. They are built once in main with their dependencies injected.
type Controllers struct {
	Admin  *controllers.AdminController
	Folder *controllers.FolderController
	Book   *controllers.BookController
}

func SetupRoutes(r *gin.Engine, ctrl *Controllers, allowedOrigins []string) {
	// Global middleware
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())

	AdminRoutes(r, ctrl.Admin)
	FolderRoutes(r, ctrl.Folder)
	BookRoutes(r, ctrl.Book)
}
