package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"kitabcloud/models"
	"kitabcloud/services"
	"kitabcloud/utils"
)

type AdminController struct {
	adminService *services.AdminService
}

func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// CheckAdmin reports whether an admin with the given email exists
func (ac *AdminController) CheckAdmin(c *gin.Context) {
	ac.check(c, ac.adminService.CheckAdmin)
}

// CheckSubAdmin reports whether a sub-admin with the given email exists
func (ac *AdminController) CheckSubAdmin(c *gin.Context) {
	ac.check(c, ac.adminService.CheckSubAdmin)
}

func (ac *AdminController) check(c *gin.Context, lookup func(context.Context, string) (*models.Admin, bool, error)) {
	var req models.CheckAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	admin, exists, err := lookup(c.Request.Context(), req.Email)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Error fetching user", err)
		return
	}

	if !exists {
		utils.SuccessResponse(c, "User not found", gin.H{"exist": false})
		return
	}
	utils.SuccessResponse(c, "User found", gin.H{"exist": true, "user": admin})
}
