package routes

import (
	"github.com/gin-gonic/gin"

	"kitabcloud/controllers"
)

func AdminRoutes(r *gin.Engine, adminController *controllers.AdminController) {
	r.POST("/checkadmin", adminController.CheckAdmin)
	r.POST("/checksubadmin", adminController.CheckSubAdmin)
}
