package command

import (
	"fmt"
	"time"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/models"
	"github.com/skinory/skinory-api/internal/utils"
)

// UserWriteStore persists user records.
type UserWriteStore interface {
	Create(user *models.User) error
	UpdatePassword(id, passwordHash string) error
}

// UserCommandService handles registration and password updates.
type UserCommandService struct {
	users UserWriteStore
}

func NewUserCommandService(users UserWriteStore) *UserCommandService {
	return &UserCommandService{users: users}
}

func (s *UserCommandService) RegisterUser(cmd cqrs.RegisterUserCommand) (*models.User, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		ID:           utils.GenerateID("usr"),
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: passwordHash,
		SkinType:     cmd.SkinType,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword enforces the password policy (at least 8 characters,
// starting with an uppercase letter) before hashing and storing.
func (s *UserCommandService) UpdatePassword(cmd cqrs.UpdatePasswordCommand) error {
	if cmd.UserID == "" || !utils.ValidPassword(cmd.NewPassword) {
		return models.ErrInvalidRequest
	}
	passwordHash, err := utils.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(cmd.UserID, passwordHash)
}
