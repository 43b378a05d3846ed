package services

import (
	"context"
	"fmt"

	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/models"
	"github.com/handsoff/console/pkg/logger"
)

// SessionStore persists the authentication state of console sessions.
// Implementations must treat an unknown ID as an empty session.
type SessionStore interface {
	Get(id string) (*models.Session, error)
	Save(session *models.Session) error
	Clear(id string) error
	Touch(id string) error
}

// AuthService owns the session state: who is signed in and with which
// backend token.
type AuthService struct {
	client *apiclient.Client
	store  SessionStore
}

func NewAuthService(client *apiclient.Client, store SessionStore) *AuthService {
	return &AuthService{
		client: client,
		store:  store,
	}
}

// Session loads the session and refreshes its idle timer when signed in.
func (s *AuthService) Session(id string) (*models.Session, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.IsAuthenticated() {
		if err := s.store.Touch(id); err != nil {
			logger.WithError(err).Warn("failed to touch session")
		}
	}
	return session, nil
}

// SetAuth stores token and user for the session, replacing prior state.
func (s *AuthService) SetAuth(id, token string, user *models.User) error {
	session, err := s.store.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	session.Token = token
	session.User = user
	if err := s.store.Save(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ClearAuth resets the session to signed out.
func (s *AuthService) ClearAuth(id string) error {
	if err := s.store.Clear(id); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *AuthService) IsAuthenticated(id string) bool {
	session, err := s.store.Get(id)
	if err != nil {
		logger.WithError(err).Warn("failed to load session")
		return false
	}
	return session.IsAuthenticated()
}

// Login exchanges credentials for a backend token and stores it in the
// session. On failure the session is left untouched.
func (s *AuthService) Login(ctx context.Context, id string, req *models.LoginRequest) (*models.User, error) {
	resp, err := s.client.WithToken("").Auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &apiclient.Error{Kind: apiclient.KindDecode, Message: apiclient.MsgDecodeFailed}
	}

	user := resp.User
	if err := s.SetAuth(id, resp.Token, &user); err != nil {
		return nil, err
	}

	logger.WithField("username", user.Username).Info("user logged in")
	return &user, nil
}

// Logout tells the backend to drop the token and clears the session. The
// session is cleared even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context, id string) error {
	session, err := s.store.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if session.IsAuthenticated() {
		if err := s.client.WithToken(session.Token).Auth.Logout(ctx); err != nil {
			logger.WithError(err).Warn("backend logout failed, clearing session anyway")
		}
	}

	return s.ClearAuth(id)
}

// CurrentUser returns the session's user, fetching and caching it from the
// backend when the session has a token but no user yet.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.User != nil {
		return session.User, nil
	}
	if !session.IsAuthenticated() {
		return nil, &apiclient.Error{Kind: apiclient.KindAuthExpired, Message: apiclient.MsgSessionExpired}
	}

	user, err := s.client.WithToken(session.Token).Auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	session.User = user
	if err := s.store.Save(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return user, nil
}
