package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the routine domain. Handlers translate these to HTTP
// status codes; services return them unwrapped so errors.Is works at the edge.
var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrNoRoutines      = errors.New("no routines found for the user")
	ErrDuplicateEntry  = errors.New("routine already exists")
	ErrEmailTaken      = errors.New("email already registered")
	ErrStaleRefresh    = errors.New("refresh token is not the active token")
)

// SkinTypeMismatchError reports a product whose skin type does not match the
// user's. Both values are carried so the message can name them.
type SkinTypeMismatchError struct {
	ProductSkinType string
	UserSkinType    string
}

func (e *SkinTypeMismatchError) Error() string {
	return fmt.Sprintf("skin type mismatch: product skin type is %q but user's skin type is %q",
		e.ProductSkinType, e.UserSkinType)
}

// CategoryMismatchError reports a product that does not belong to the
// requested category.
type CategoryMismatchError struct {
	Category string
}

func (e *CategoryMismatchError) Error() string {
	return fmt.Sprintf("product does not match the provided category %q", e.Category)
}
