package query

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/models"
	"github.com/skinory/skinory-api/internal/utils"
)

const testSecret = "unit-test-secret"

type fakeAuthUserStore struct {
	usersByEmail map[string]*models.User
	usersByID    map[string]*models.User
	tokens       map[string]*models.AuthToken
}

func (f *fakeAuthUserStore) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeAuthUserStore) GetByID(id string) (*models.User, error) {
	if u, ok := f.usersByID[id]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeAuthUserStore) UpsertAuthToken(userID, accessToken, refreshToken string) error {
	if f.tokens == nil {
		f.tokens = map[string]*models.AuthToken{}
	}
	f.tokens[userID] = &models.AuthToken{UserID: userID, AccessToken: accessToken, RefreshToken: refreshToken}
	return nil
}

func (f *fakeAuthUserStore) GetAuthToken(userID string) (*models.AuthToken, error) {
	if tok, ok := f.tokens[userID]; ok {
		return tok, nil
	}
	return nil, models.ErrStaleRefresh
}

func newAuthFixture(t *testing.T) (*AuthQueryService, *fakeAuthUserStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	hash, err := utils.HashPassword("Sunscreen1")
	require.NoError(t, err)

	user := &models.User{ID: "usr-1", Username: "ayu", Email: "ayu@example.com", PasswordHash: hash, SkinType: "oily"}
	store := &fakeAuthUserStore{
		usersByEmail: map[string]*models.User{user.Email: user},
		usersByID:    map[string]*models.User{user.ID: user},
	}
	return NewAuthQueryService(store), store
}

func parseClaims(t *testing.T, token string) *Claims {
	t.Helper()
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func TestLogin_IssuesAndStoresPair(t *testing.T) {
	svc, store := newAuthFixture(t)

	pair, err := svc.Login(cqrs.LoginCommand{Email: "ayu@example.com", Password: "Sunscreen1"})
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, "usr-1", parseClaims(t, pair.AccessToken).UserID)
	assert.Equal(t, "usr-1", parseClaims(t, pair.RefreshToken).UserID)

	stored := store.tokens["usr-1"]
	require.NotNil(t, stored, "login must persist the active pair")
	assert.Equal(t, pair.AccessToken, stored.AccessToken)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(cqrs.LoginCommand{Email: "ayu@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(cqrs.LoginCommand{Email: "ghost@example.com", Password: "Sunscreen1"})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestRefreshToken_Success(t *testing.T) {
	svc, _ := newAuthFixture(t)

	pair, err := svc.Login(cqrs.LoginCommand{Email: "ayu@example.com", Password: "Sunscreen1"})
	require.NoError(t, err)

	access, err := svc.RefreshToken(cqrs.RefreshTokenCommand{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, "usr-1", parseClaims(t, access).UserID)
}

func TestRefreshToken_NotTheStoredPair(t *testing.T) {
	svc, store := newAuthFixture(t)

	pair, err := svc.Login(cqrs.LoginCommand{Email: "ayu@example.com", Password: "Sunscreen1"})
	require.NoError(t, err)

	// A second login replaces the active pair; the old refresh token is stale.
	_, err = svc.Login(cqrs.LoginCommand{Email: "ayu@example.com", Password: "Sunscreen1"})
	require.NoError(t, err)

	if store.tokens["usr-1"].RefreshToken != pair.RefreshToken {
		_, err = svc.RefreshToken(cqrs.RefreshTokenCommand{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, models.ErrStaleRefresh)
	}
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.RefreshToken(cqrs.RefreshTokenCommand{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, models.ErrStaleRefresh)
}
