package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"kitabcloud/repository"
	"kitabcloud/services"
	"kitabcloud/utils"
)

// handleServiceError translates the service error taxonomy to a response
// status: 400 for validation/identifier/date errors, 404 for not found, 500
// for upstream failures with the raw error text attached.
func handleServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidIdentifier),
		errors.Is(err, services.ErrInvalidDate):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c, action, err)
	}
}
