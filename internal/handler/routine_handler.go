package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/middleware"
	"github.com/skinory/skinory-api/internal/models"
)

// RoutineCommander defines the write-side operations used by RoutineHandler.
type RoutineCommander interface {
	AddRoutine(cqrs.AddRoutineCommand) (*models.Product, error)
	UpdateApplied(cqrs.UpdateAppliedCommand) error
	DeleteRoutines(cqrs.DeleteRoutinesCommand) error
}

// RoutineQuerier defines the read-side operations used by RoutineHandler.
type RoutineQuerier interface {
	ListRoutines(cqrs.ListRoutinesQuery) ([]models.RoutineView, error)
	RecommendedProducts(cqrs.RecommendedProductsQuery) ([]models.Product, error)
}

// RoutineHandler handles routine-related HTTP requests.
type RoutineHandler struct {
	commands RoutineCommander
	queries  RoutineQuerier
}

type UpdateAppliedRequest struct {
	// Pointer so a missing field is distinguishable from false. A string or
	// number in the JSON fails binding; no coercion.
	Applied *bool `json:"applied" validate:"required"`
}

type AddRoutineResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

type ListRoutinesResponse struct {
	Routines []models.RoutineView `json:"routines"`
}

type RecommendedProductsResponse struct {
	Products []models.Product `json:"products"`
}

func NewRoutineHandler(commands RoutineCommander, queries RoutineQuerier) *RoutineHandler {
	return &RoutineHandler{commands: commands, queries: queries}
}

// AddRoutine handles POST /routine/:user_id/:category/{day,night}.
func (h *RoutineHandler) AddRoutine(period models.Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductID string `json:"productId" validate:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
			middleware.RespondWithValidationError(c, validationErrors)
			return
		}

		product, err := h.commands.AddRoutine(cqrs.AddRoutineCommand{
			UserID:    c.Param("user_id"),
			ProductID: req.ProductID,
			Category:  c.Param("category"),
			Period:    period,
		})
		if err != nil {
			respondWithDomainError(c, err, "Error adding routine")
			return
		}

		message := "Day Routine added successfully"
		if period == models.PeriodNight {
			message = "Night Routine added successfully"
		}
		c.JSON(http.StatusOK, AddRoutineResponse{Message: message, Product: product})
	}
}

// UpdateApplied handles PATCH /routine/:user_id/:product_id.
func (h *RoutineHandler) UpdateApplied(c *gin.Context) {
	var req UpdateAppliedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	err := h.commands.UpdateApplied(cqrs.UpdateAppliedCommand{
		UserID:    c.Param("user_id"),
		ProductID: c.Param("product_id"),
		Applied:   *req.Applied,
	})
	if err != nil {
		respondWithDomainError(c, err, "Error updating applied status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Applied status updated successfully"})
}

// DeleteRoutines handles DELETE /routine/:user_id/{day,night}. Responds 202:
// the deletion notification is fire-and-forget and the removal is sequenced
// after it, not confirmed.
func (h *RoutineHandler) DeleteRoutines(period models.Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.commands.DeleteRoutines(cqrs.DeleteRoutinesCommand{
			UserID: c.Param("user_id"),
			Period: period,
		})
		if err != nil {
			respondWithDomainError(c, err, "Error deleting routines")
			return
		}

		message := "Day Routine Deleted Successfully"
		if period == models.PeriodNight {
			message = "Night Routine Deleted Successfully"
		}
		c.JSON(http.StatusAccepted, gin.H{"message": message})
	}
}

// ListRoutines handles GET /routine/:user_id/{day,night}. A user with no
// entries gets an empty list, not an error.
func (h *RoutineHandler) ListRoutines(period models.Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		routines, err := h.queries.ListRoutines(cqrs.ListRoutinesQuery{
			UserID: c.Param("user_id"),
			Period: period,
		})
		if err != nil {
			respondWithDomainError(c, err, "Error fetching user routines")
			return
		}

		c.JSON(http.StatusOK, ListRoutinesResponse{Routines: routines})
	}
}

// RecommendedProducts handles GET /routine/:user_id/:category.
func (h *RoutineHandler) RecommendedProducts(c *gin.Context) {
	products, err := h.queries.RecommendedProducts(cqrs.RecommendedProductsQuery{
		UserID:   c.Param("user_id"),
		Category: c.Param("category"),
	})
	if err != nil {
		respondWithDomainError(c, err, "Error fetching recommended products")
		return
	}

	c.JSON(http.StatusOK, RecommendedProductsResponse{Products: products})
}
