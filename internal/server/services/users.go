// Package services implements the server's application logic on top of the
// repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/auth"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/repositories/users"
)

// UserService handles signup, login and user lookup. It owns password
// hashing and token issuance.
type UserService struct {
	users    users.Repository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewUserService(repo users.Repository, secret []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		users:    repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Signup creates a fresh account and returns it with an access token.
// A duplicate email yields models.ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, email, password, username string) (*models.Token, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := models.User{
		ID:              uuid.NewString(),
		Email:           email,
		Username:        username,
		HashedPassword:  string(hash),
		Level:           1,
		DisciplineScore: 50,
		LastActive:      now,
		CreatedAt:       now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns the account with a fresh
// token. Unknown emails and wrong passwords are indistinguishable to the
// caller: both yield models.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Token, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.issueToken(*user)
}

// GetByID loads a user record. Satisfies auth.UserLoader.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) issueToken(user models.User) (*models.Token, error) {
	token, err := auth.GenerateToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.Token{AccessToken: token, TokenType: "bearer", User: user}, nil
}
