package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/auth"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, email, password, username string) (*models.Token, error)
	loginFn  func(ctx context.Context, email, password string) (*models.Token, error)
}

func (s *stubAuthService) Signup(ctx context.Context, email, password, username string) (*models.Token, error) {
	return s.signupFn(ctx, email, password, username)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*models.Token, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignup_Success(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(ctx context.Context, email, password, username string) (*models.Token, error) {
			require.Equal(t, "a@b.io", email)
			require.Equal(t, "pw", password)
			require.Equal(t, "hunter", username)
			return &models.Token{
				AccessToken: "tok-1",
				TokenType:   "bearer",
				User:        models.User{ID: "u1", Username: username, Level: 1},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(http.MethodPost, "/auth/signup",
		`{"email": "a@b.io", "password": "pw", "username": "hunter"}`)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"tok-1"`)
	assert.Contains(t, rec.Body.String(), `"username":"hunter"`)
	assert.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestSignup_ServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(ctx context.Context, email, password, username string) (*models.Token, error) {
			return nil, models.ErrEmailTaken
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(http.MethodPost, "/auth/signup",
		`{"email": "a@b.io", "password": "pw", "username": "hunter"}`)

	assert.ErrorIs(t, h.Signup(c), models.ErrEmailTaken)
}

func TestSignup_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(http.MethodPost, "/auth/signup", `{not json`)

	err := h.Signup(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestSignup_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password": "pw", "username": "hunter"}`},
		{"bad email", `{"email": "nope", "password": "pw", "username": "hunter"}`},
		{"missing password", `{"email": "a@b.io", "username": "hunter"}`},
		{"missing username", `{"email": "a@b.io", "password": "pw"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{})
			c, _ := newAuthContext(http.MethodPost, "/auth/signup", tt.body)

			err := h.Signup(c)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.Token, error) {
			return &models.Token{AccessToken: "tok-2", TokenType: "bearer", User: models.User{ID: "u1"}}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(http.MethodPost, "/auth/login", `{"email": "a@b.io", "password": "pw"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"tok-2"`)
}

func TestLogin_ServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.Token, error) {
			return nil, models.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(http.MethodPost, "/auth/login", `{"email": "a@b.io", "password": "wrong"}`)

	assert.ErrorIs(t, h.Login(c), models.ErrInvalidCredentials)
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthContext(http.MethodGet, "/auth/me", "")
	auth.SetCurrentUser(c, &models.User{ID: "u1", Username: "hunter", Level: 3})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"hunter"`)
	assert.Contains(t, rec.Body.String(), `"level":3`)
}
