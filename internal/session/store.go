// Package session holds the client-side user session: a Store with two
// states (anonymous and authenticated) and the Manager that drives it from
// the results of remote auth calls.
package session

import (
	"sync"

	"github.com/atinyakov/receipts/internal/models"
)

// Store is the in-memory session of one client. It caches profile fields
// for rendering and is never consulted for access control.
//
// The mutex only keeps reads and writes memory safe. Two auth operations
// racing to mutate the Store end up last-write-wins; callers serialize them.
type Store struct {
	mu   sync.RWMutex
	user *models.User
}

// NewStore returns an anonymous Store.
func NewStore() *Store {
	return &Store{}
}

// SetAuthenticated replaces the current user with profile and marks the
// session as logged in.
func (s *Store) SetAuthenticated(profile models.Profile) {
	u := &models.User{
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Email:      profile.Email,
		IsLoggedIn: true,
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Clear resets the Store to the anonymous state.
func (s *Store) Clear() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// User returns a copy of the current user and whether one is set.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsLoggedIn reports whether the Store is authenticated.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsLoggedIn
}
