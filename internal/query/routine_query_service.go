package query

import (
	"context"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/models"
)

// RoutineReader serves cached routine listings and recommendation queries.
type RoutineReader interface {
	ListRoutines(ctx context.Context, userID string, period models.Period) ([]models.RoutineView, error)
	RecommendedProducts(ctx context.Context, skinType, category string) ([]models.Product, error)
}

// UserReader resolves users for criteria queries.
type UserReader interface {
	GetByID(id string) (*models.User, error)
}

// CatalogReader serves the best-product-per-category query.
type CatalogReader interface {
	BestByCategory(skinType string) ([]models.Product, error)
}

// RoutineQueryService handles the read side of routines: listings,
// recommendations and best products. Pure reads; no routine entry is ever
// created here.
type RoutineQueryService struct {
	routines RoutineReader
	users    UserReader
	catalog  CatalogReader
}

func NewRoutineQueryService(routines RoutineReader, users UserReader, catalog CatalogReader) *RoutineQueryService {
	return &RoutineQueryService{routines: routines, users: users, catalog: catalog}
}

// ListRoutines returns all of a user's entries for one period. A user with
// no entries gets an empty slice, not an error.
func (s *RoutineQueryService) ListRoutines(q cqrs.ListRoutinesQuery) ([]models.RoutineView, error) {
	if q.UserID == "" || !q.Period.Valid() {
		return nil, models.ErrInvalidRequest
	}
	return s.routines.ListRoutines(context.Background(), q.UserID, q.Period)
}

// RecommendedProducts matches catalog products against the criteria pair
// (user's skin type, requested category). No per-product validation happens
// here; that is the assignment path's job.
func (s *RoutineQueryService) RecommendedProducts(q cqrs.RecommendedProductsQuery) ([]models.Product, error) {
	if q.UserID == "" || q.Category == "" {
		return nil, models.ErrInvalidRequest
	}
	user, err := s.users.GetByID(q.UserID)
	if err != nil {
		return nil, err
	}
	return s.routines.RecommendedProducts(context.Background(), user.SkinType, q.Category)
}

// BestProducts returns the top-rated product of each category for the
// user's skin type.
func (s *RoutineQueryService) BestProducts(q cqrs.BestProductsQuery) ([]models.Product, error) {
	if q.UserID == "" {
		return nil, models.ErrInvalidRequest
	}
	user, err := s.users.GetByID(q.UserID)
	if err != nil {
		return nil, err
	}
	return s.catalog.BestByCategory(user.SkinType)
}
