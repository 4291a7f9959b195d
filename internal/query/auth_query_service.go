package query

import (
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/models"
	"github.com/skinory/skinory-api/internal/utils"
)

var (
	jwtSecretOnce sync.Once
	jwtSecretVal  []byte
)

func jwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			panic("JWT_SECRET environment variable is not set")
		}
		jwtSecretVal = []byte(secret)
	})
	return jwtSecretVal
}

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// AuthUserStore is the identity access the auth service needs.
type AuthUserStore interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	UpsertAuthToken(userID, accessToken, refreshToken string) error
	GetAuthToken(userID string) (*models.AuthToken, error)
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"active_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthQueryService handles login and token refresh. Each user holds a single
// active pair; logging in replaces it, and refresh is only honoured for the
// stored refresh token.
type AuthQueryService struct {
	users AuthUserStore
}

func NewAuthQueryService(users AuthUserStore) *AuthQueryService {
	return &AuthQueryService{users: users}
}

func (s *AuthQueryService) Login(cmd cqrs.LoginCommand) (*TokenPair, error) {
	user, err := s.users.GetByEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, models.ErrInvalidRequest
	}

	accessToken, err := s.generateToken(user.ID, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user.ID, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpsertAuthToken(user.ID, accessToken, refreshToken); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshToken issues a new access token when the presented refresh token is
// the stored active one for a still-existing user.
func (s *AuthQueryService) RefreshToken(cmd cqrs.RefreshTokenCommand) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cmd.RefreshToken, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrStaleRefresh
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return "", err
	}

	stored, err := s.users.GetAuthToken(user.ID)
	if err != nil {
		return "", err
	}
	if stored.RefreshToken != cmd.RefreshToken {
		return "", models.ErrStaleRefresh
	}

	return s.generateToken(user.ID, accessTokenTTL)
}

func (s *AuthQueryService) generateToken(userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", err
	}
	return signed, nil
}
