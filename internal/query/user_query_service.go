package query

import (
	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/models"
)

// UserQueryService serves profile reads.
type UserQueryService struct {
	users UserReader
}

func NewUserQueryService(users UserReader) *UserQueryService {
	return &UserQueryService{users: users}
}

func (s *UserQueryService) GetProfile(q cqrs.GetProfileQuery) (*models.ProfileView, error) {
	user, err := s.users.GetByID(q.UserID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		SkinType: user.SkinType,
	}, nil
}
