package cqrs

import "github.com/skinory/skinory-api/internal/models"

type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
	SkinType string
}

type UpdatePasswordCommand struct {
	UserID      string
	NewPassword string
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	RefreshToken string
}

// AddRoutineCommand assigns one product to one period of a user's routine.
type AddRoutineCommand struct {
	UserID    string
	ProductID string
	Category  string
	Period    models.Period
}

// UpdateAppliedCommand flips the applied flag on an existing entry.
// The match is on user and product only; it is not scoped to a period.
type UpdateAppliedCommand struct {
	UserID    string
	ProductID string
	Applied   bool
}

// DeleteRoutinesCommand removes every entry a user has for one period.
type DeleteRoutinesCommand struct {
	UserID string
	Period models.Period
}
