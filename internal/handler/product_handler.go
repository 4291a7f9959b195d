package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/models"
)

// BestProductQuerier defines the read-side operation used by ProductHandler.
type BestProductQuerier interface {
	BestProducts(cqrs.BestProductsQuery) ([]models.Product, error)
}

// ProductHandler handles catalog highlight requests.
type ProductHandler struct {
	queries BestProductQuerier
}

type BestProductsResponse struct {
	Products []models.Product `json:"products"`
}

func NewProductHandler(queries BestProductQuerier) *ProductHandler {
	return &ProductHandler{queries: queries}
}

// BestProducts handles GET /products/best/:user_id — the top-rated product
// of each category for the user's skin type.
func (h *ProductHandler) BestProducts(c *gin.Context) {
	products, err := h.queries.BestProducts(cqrs.BestProductsQuery{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		respondWithDomainError(c, err, "Error fetching best products")
		return
	}

	c.JSON(http.StatusOK, BestProductsResponse{Products: products})
}
