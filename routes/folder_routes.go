package routes

import (
	"github.com/gin-gonic/gin"

	"kitabcloud/controllers"
)

func FolderRoutes(r *gin.Engine, folderController *controllers.FolderController) {
	r.POST("/uploadfolder", folderController.CreateFolder)
	r.GET("/list-folders-files", folderController.ListFolders)
	r.DELETE("/deletefolder", folderController.DeleteFolder)

	r.POST("/uploadfile", folderController.UploadFile)
	r.DELETE("/deletefile", folderController.DeleteFile)
	r.POST("/getpresignedurl", folderController.GetPresignedURL)
}
