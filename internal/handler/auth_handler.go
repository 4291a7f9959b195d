package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/middleware"
	"github.com/skinory/skinory-api/internal/models"
	"github.com/skinory/skinory-api/internal/query"
)

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(cqrs.LoginCommand) (*query.TokenPair, error)
	RefreshToken(cqrs.RefreshTokenCommand) (string, error)
}

// UserRegistrar defines the write-side operation used by AuthHandler.
type UserRegistrar interface {
	RegisterUser(cqrs.RegisterUserCommand) (*models.User, error)
}

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	commands UserRegistrar
	queries  AuthQuerier
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	SkinType string `json:"skinType" validate:"required,oneof=oily dry normal sensitive combination"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"active_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"active_token"`
}

func NewAuthHandler(commands UserRegistrar, queries AuthQuerier) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	_, err := h.commands.RegisterUser(cqrs.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		SkinType: req.SkinType,
	})
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Email already registered")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	pair, err := h.queries.Login(cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, models.ErrInvalidRequest) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Incorrect password")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:      "Login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	accessToken, err := h.queries.RefreshToken(cqrs.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, models.ErrStaleRefresh) {
			middleware.RespondWithError(c, http.StatusForbidden, "Invalid refresh token")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	c.JSON(http.StatusOK, RefreshTokenResponse{
		Message:     "Token refreshed",
		AccessToken: accessToken,
	})
}
