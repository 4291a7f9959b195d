package models

import "time"

// Period identifies which half of a user's routine an entry belongs to.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodNight Period = "night"
)

// Valid reports whether p is one of the two known periods.
func (p Period) Valid() bool {
	return p == PeriodDay || p == PeriodNight
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	SkinType     string    `json:"skinType"`
	CreatedAt    time.Time `json:"createdTimestamp"`
	UpdatedAt    time.Time `json:"updatedTimestamp"`
}

// AuthToken is the single active token pair per user, replaced on every login.
type AuthToken struct {
	UserID       string    `json:"-"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UpdatedAt    time.Time `json:"-"`
}

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	SkinType string  `json:"skinType"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// RoutineEntry links a user to a product for one period of their routine.
// Category is denormalised from the product validated at creation time.
type RoutineEntry struct {
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Category  string    `json:"category"`
	Period    Period    `json:"period"`
	Applied   bool      `json:"applied"`
	CreatedAt time.Time `json:"createdTimestamp"`
}
