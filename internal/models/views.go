package models

import "time"

// ProfileView is the read-optimised projection of a user.
// It never exposes PasswordHash.
type ProfileView struct {
	ID       string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	SkinType string `json:"skinType"`
}

// RoutineView is the read-optimised projection of a routine entry, joined
// with the product it references.
type RoutineView struct {
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Category    string    `json:"category"`
	SkinType    string    `json:"skinType"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Applied     bool      `json:"applied"`
	CreatedAt   time.Time `json:"createdTimestamp"`
}
