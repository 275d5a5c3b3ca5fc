package controllers

import (
	"github.com/gin-gonic/gin"

	"kitabcloud/models"
	"kitabcloud/services"
	"kitabcloud/utils"
)

type FolderController struct {
	folderService *services.FolderService
}

func NewFolderController(folderService *services.FolderService) *FolderController {
	return &FolderController{folderService: folderService}
}

// CreateFolder creates a folder marker in the object store and its catalog
// document
func (fc *FolderController) CreateFolder(c *gin.Context) {
	var req models.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	folder, err := fc.folderService.CreateFolder(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to create folder")
		return
	}

	utils.CreatedResponse(c, "Folder created successfully", folder)
}

// ListFolders returns all folders with freshly signed file download URLs
func (fc *FolderController) ListFolders(c *gin.Context) {
	folders, err := fc.folderService.ListFolders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to list folders")
		return
	}

	utils.SuccessResponse(c, "Folders retrieved successfully", gin.H{"folders": folders})
}

// DeleteFolder deletes a folder's objects best-effort, then its catalog
// document
func (fc *FolderController) DeleteFolder(c *gin.Context) {
	folderID := c.Query("folderId")

	result, err := fc.folderService.DeleteFolder(c.Request.Context(), folderID)
	if err != nil {
		handleServiceError(c, err, "Failed to delete folder")
		return
	}

	utils.SuccessResponse(c, "Folder and files deleted successfully", result)
}

// UploadFile appends an uploaded file's metadata to its folder
func (fc *FolderController) UploadFile(c *gin.Context) {
	var req models.FileUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	folder, err := fc.folderService.AddFile(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to upload file metadata")
		return
	}

	utils.SuccessResponse(c, "File uploaded successfully", folder)
}

// DeleteFile removes a single file record from its folder
func (fc *FolderController) DeleteFile(c *gin.Context) {
	folderID := c.Query("folderId")
	fileID := c.Query("fileId")

	folder, err := fc.folderService.RemoveFile(c.Request.Context(), folderID, fileID)
	if err != nil {
		handleServiceError(c, err, "Failed to delete file")
		return
	}

	utils.SuccessResponse(c, "File deleted successfully", folder)
}

// GetPresignedURL returns a short-lived upload URL for a folder file
func (fc *FolderController) GetPresignedURL(c *gin.Context) {
	var req models.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	url, err := fc.folderService.PresignFileUpload(req.FolderName, req.FileName)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to generate presigned URL", err)
		return
	}

	utils.SuccessResponse(c, "Presigned URL generated", models.PresignResponse{URL: url})
}
