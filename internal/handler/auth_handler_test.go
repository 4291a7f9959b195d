package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skinory/skinory-api/internal/cqrs"
	"github.com/skinory/skinory-api/internal/models"
	"github.com/skinory/skinory-api/internal/query"
)

// ---- mock implementations ----

type mockAuthQuerier struct {
	loginFn   func(cqrs.LoginCommand) (*query.TokenPair, error)
	refreshFn func(cqrs.RefreshTokenCommand) (string, error)
}

func (m *mockAuthQuerier) Login(cmd cqrs.LoginCommand) (*query.TokenPair, error) {
	if m.loginFn != nil {
		return m.loginFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAuthQuerier) RefreshToken(cmd cqrs.RefreshTokenCommand) (string, error) {
	if m.refreshFn != nil {
		return m.refreshFn(cmd)
	}
	return "", fmt.Errorf("not configured")
}

type mockUserRegistrar struct {
	registerFn func(cqrs.RegisterUserCommand) (*models.User, error)
}

func (m *mockUserRegistrar) RegisterUser(cmd cqrs.RegisterUserCommand) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newAuthTestRouter(cmds UserRegistrar, qrys AuthQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(cmds, qrys)
	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.RefreshToken)
	return r
}

func aValidRegisterBody() map[string]interface{} {
	return map[string]interface{}{
		"username": "ayu",
		"email":    "ayu@example.com",
		"password": "Sunscreen1",
		"skinType": "oily",
	}
}

// ---- Register ----

func TestRegister_Success(t *testing.T) {
	cmds := &mockUserRegistrar{
		registerFn: func(cmd cqrs.RegisterUserCommand) (*models.User, error) {
			if cmd.SkinType != "oily" {
				t.Errorf("expected oily skin type, got %s", cmd.SkinType)
			}
			return &models.User{ID: "usr-1", Username: cmd.Username}, nil
		},
	}
	router := newAuthTestRouter(cmds, &mockAuthQuerier{})

	w := doRequest(router, "POST", "/auth/register", aValidRegisterBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	cmds := &mockUserRegistrar{
		registerFn: func(cqrs.RegisterUserCommand) (*models.User, error) {
			return nil, models.ErrEmailTaken
		},
	}
	router := newAuthTestRouter(cmds, &mockAuthQuerier{})

	w := doRequest(router, "POST", "/auth/register", aValidRegisterBody())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegister_UnknownSkinType(t *testing.T) {
	router := newAuthTestRouter(&mockUserRegistrar{}, &mockAuthQuerier{})

	body := aValidRegisterBody()
	body["skinType"] = "reptilian"
	w := doRequest(router, "POST", "/auth/register", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// ---- Login ----

func TestLogin_Success(t *testing.T) {
	qrys := &mockAuthQuerier{
		loginFn: func(cmd cqrs.LoginCommand) (*query.TokenPair, error) {
			return &query.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	}
	router := newAuthTestRouter(&mockUserRegistrar{}, qrys)

	w := doRequest(router, "POST", "/auth/login", map[string]interface{}{
		"email": "ayu@example.com", "password": "Sunscreen1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp LoginResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.AccessToken != "access" || resp.RefreshToken != "refresh" {
		t.Errorf("unexpected tokens: %+v", resp)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	qrys := &mockAuthQuerier{
		loginFn: func(cqrs.LoginCommand) (*query.TokenPair, error) {
			return nil, models.ErrUserNotFound
		},
	}
	router := newAuthTestRouter(&mockUserRegistrar{}, qrys)

	w := doRequest(router, "POST", "/auth/login", map[string]interface{}{
		"email": "ghost@example.com", "password": "Sunscreen1",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	qrys := &mockAuthQuerier{
		loginFn: func(cqrs.LoginCommand) (*query.TokenPair, error) {
			return nil, models.ErrInvalidRequest
		},
	}
	router := newAuthTestRouter(&mockUserRegistrar{}, qrys)

	w := doRequest(router, "POST", "/auth/login", map[string]interface{}{
		"email": "ayu@example.com", "password": "nope nope",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// ---- Refresh ----

func TestRefresh_Success(t *testing.T) {
	qrys := &mockAuthQuerier{
		refreshFn: func(cmd cqrs.RefreshTokenCommand) (string, error) {
			if cmd.RefreshToken != "refresh-token" {
				t.Errorf("unexpected token: %s", cmd.RefreshToken)
			}
			return "fresh-access", nil
		},
	}
	router := newAuthTestRouter(&mockUserRegistrar{}, qrys)

	w := doRequest(router, "POST", "/auth/refresh", map[string]interface{}{
		"refresh_token": "refresh-token",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp RefreshTokenResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.AccessToken != "fresh-access" {
		t.Errorf("unexpected token: %s", resp.AccessToken)
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	router := newAuthTestRouter(&mockUserRegistrar{}, &mockAuthQuerier{})

	w := doRequest(router, "POST", "/auth/refresh", map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRefresh_StaleToken(t *testing.T) {
	qrys := &mockAuthQuerier{
		refreshFn: func(cqrs.RefreshTokenCommand) (string, error) {
			return "", models.ErrStaleRefresh
		},
	}
	router := newAuthTestRouter(&mockUserRegistrar{}, qrys)

	w := doRequest(router, "POST", "/auth/refresh", map[string]interface{}{
		"refresh_token": "old-token",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
