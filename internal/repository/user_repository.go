package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/skinory/skinory-api/internal/models"
)

// UserRepository handles all PostgreSQL operations for users and their
// active token pairs.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, skin_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.SkinType,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID fetches the full write model (including PasswordHash) for internal operations.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, skin_type, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.SkinType,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, skin_type, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.SkinType,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(id, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := r.db.Exec(query, id, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// UpsertAuthToken replaces the user's active token pair. Each user holds at
// most one pair; a new login invalidates the previous refresh token.
func (r *UserRepository) UpsertAuthToken(userID, accessToken, refreshToken string) error {
	query := `
		INSERT INTO auth_tokens (user_id, access_token, refresh_token, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET access_token = $2, refresh_token = $3, updated_at = $4
	`
	if _, err := r.db.Exec(query, userID, accessToken, refreshToken, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert auth token: %w", err)
	}
	return nil
}

func (r *UserRepository) GetAuthToken(userID string) (*models.AuthToken, error) {
	query := `
		SELECT user_id, access_token, refresh_token, updated_at
		FROM auth_tokens
		WHERE user_id = $1
	`
	var token models.AuthToken
	err := r.db.QueryRow(query, userID).Scan(
		&token.UserID, &token.AccessToken, &token.RefreshToken, &token.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrStaleRefresh
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}
	return &token, nil
}
