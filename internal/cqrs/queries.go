package cqrs

import "github.com/skinory/skinory-api/internal/models"

// ---------- User queries ----------

// GetProfileQuery fetches a single user's profile by ID.
type GetProfileQuery struct {
	UserID string
}

// ---------- Catalog queries ----------

// RecommendedProductsQuery fetches catalog products matching the user's skin
// type for one category. No routine entry is created.
type RecommendedProductsQuery struct {
	UserID   string
	Category string
}

// BestProductsQuery fetches the highest-rated product per category for the
// user's skin type.
type BestProductsQuery struct {
	UserID string
}

// ---------- Routine queries ----------

// ListRoutinesQuery fetches all of a user's entries for one period.
type ListRoutinesQuery struct {
	UserID string
	Period models.Period
}
