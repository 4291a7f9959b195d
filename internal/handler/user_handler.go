package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/middleware"
	"github.com/skinory/skinory-api/internal/models"
)

// PasswordUpdater defines the write-side operation used by UserHandler.
type PasswordUpdater interface {
	UpdatePassword(cqrs.UpdatePasswordCommand) error
}

// ProfileQuerier defines the read-side operation used by UserHandler.
type ProfileQuerier interface {
	GetProfile(cqrs.GetProfileQuery) (*models.ProfileView, error)
}

// UserHandler handles profile and password requests.
type UserHandler struct {
	commands PasswordUpdater
	queries  ProfileQuerier
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

type ProfileResponse struct {
	Profile *models.ProfileView `json:"Profile"`
}

func NewUserHandler(commands PasswordUpdater, queries ProfileQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	view, err := h.queries.GetProfile(cqrs.GetProfileQuery{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		respondWithDomainError(c, err, "Error fetching profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Profile: view})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	err := h.commands.UpdatePassword(cqrs.UpdatePasswordCommand{
		UserID:      c.Param("user_id"),
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidRequest) {
			middleware.RespondWithError(c, http.StatusBadRequest,
				"Password must be at least 8 characters and begin with an uppercase letter")
			return
		}
		respondWithDomainError(c, err, "Error updating password")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Update Password Success"})
}
