// Package session holds the client's authentication state: the access
// token and user record of the currently signed-in account. A Store is
// constructed once at startup and handed to every component that needs
// it; there is no package-level instance.
package session

import (
	"sync"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/client/models"
)

// Store is the process-wide authentication context. The zero value is a
// valid, unauthenticated store.
type Store struct {
	mu    sync.RWMutex
	token string
	user  models.User
}

func NewStore() *Store {
	return &Store{}
}

// Install replaces the current session with the given token and user.
// Called exactly once per successful login/signup response.
func (s *Store) Install(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Clear drops the session, returning the store to the unauthenticated state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = models.User{}
}

// Token returns the current access token, or "" when signed out.
// Satisfies api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns a copy of the signed-in user record.
func (s *Store) Current() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
