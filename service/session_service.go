package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"princegaming/models"
	"princegaming/repository"
)

// Storage keys shared with the browser client
const (
	KeyAuthToken = "authToken"
	KeyUserData  = "userData"
)

// SessionService holds the token and user profile.
// Every reader goes through it; the key-value store is never read directly.
type SessionService struct {
	store repository.KeyValueStore

	mu    sync.RWMutex
	token string
	user  *models.User
}

// Ensure SessionService implements SessionServiceInterface
var _ SessionServiceInterface = (*SessionService)(nil)

// NewSessionService creates a SessionService backed by store
func NewSessionService(store repository.KeyValueStore) *SessionService {
	return &SessionService{store: store}
}

// Init loads a previously saved session from the store
func (s *SessionService) Init(ctx context.Context) error {
	token, err := s.store.Get(ctx, KeyAuthToken)
	if err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
		return fmt.Errorf("failed to read %s: %w", KeyAuthToken, err)
	}

	var user *models.User
	raw, err := s.store.Get(ctx, KeyUserData)
	switch {
	case err == nil:
		var u models.User
		if jerr := json.Unmarshal([]byte(raw), &u); jerr != nil {
			zap.S().Warnf("⚠️  Session: ignoring unreadable %s: %v", KeyUserData, jerr)
		} else {
			user = &u
		}
	case !errors.Is(err, repository.ErrKeyNotFound):
		return fmt.Errorf("failed to read %s: %w", KeyUserData, err)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	if token != "" {
		zap.S().Infof("🔑 Session: restored token for %s", userEmail(user))
	}
	return nil
}

// Save writes token and user together
func (s *SessionService) Save(ctx context.Context, token string, user models.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, KeyAuthToken, token); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyAuthToken, err)
	}
	if err := s.store.Set(ctx, KeyUserData, string(encoded)); err != nil {
		// a token must never be left behind without its user
		if derr := s.store.Delete(ctx, KeyAuthToken); derr != nil {
			zap.S().Errorf("❌ Session: could not roll back %s: %v", KeyAuthToken, derr)
		}
		return fmt.Errorf("failed to save %s: %w", KeyUserData, err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Clear removes token and user together. The in-memory session is dropped
// even if the store fails, so a rejected token is never sent again.
func (s *SessionService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, KeyAuthToken, KeyUserData); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the bearer token when one is present
func (s *SessionService) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// User returns a copy of the stored profile
func (s *SessionService) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// IsAuthenticated reports whether a token is present
func (s *SessionService) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

func userEmail(u *models.User) string {
	if u == nil || u.Email == "" {
		return "unknown user"
	}
	return u.Email
}
