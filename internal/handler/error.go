package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skinory/skinory-api/internal/middleware"
	"github.com/skinory/skinory-api/internal/models"
)

// respondWithDomainError translates a domain error into an HTTP response.
// Unclassified errors become a generic 500 with the given fallback message
// so collaborator internals never leak to the client.
func respondWithDomainError(c *gin.Context, err error, fallback string) {
	var skinMismatch *models.SkinTypeMismatchError
	var categoryMismatch *models.CategoryMismatchError

	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		middleware.RespondWithError(c, http.StatusBadRequest, "User ID, Product ID, and Category are required")
	case errors.As(err, &skinMismatch), errors.As(err, &categoryMismatch):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateEntry):
		middleware.RespondWithError(c, http.StatusBadRequest, "Routine already exists")
	case errors.Is(err, models.ErrUserNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrProductNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, models.ErrRoutineNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Routine not found")
	case errors.Is(err, models.ErrNoRoutines):
		middleware.RespondWithError(c, http.StatusNotFound, "No routines found for the user")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
