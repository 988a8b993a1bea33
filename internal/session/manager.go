package session

import (
	"context" // Backend and store calls
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"time"    // Expiry computation

	"github.com/google/uuid"     // Session ids
	"github.com/sirupsen/logrus" // Structured logging

	"storefront/internal/backend"
	"storefront/internal/domain"
	"storefront/internal/utils"
)

var (
	// ErrLoginFailed is the only thing a failed login reports
	ErrLoginFailed = errors.New("login failed")
	// ErrRegistrationFailed wraps the backend's reason for a failed registration
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrSessionExpired means the token was rejected and the session torn down
	ErrSessionExpired = errors.New("session expired")
)

// Backend is the part of the store backend the session lifecycle needs
type Backend interface {
	Login(ctx context.Context, email, password string) (backend.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (backend.AuthResult, error)
	Me(ctx context.Context, cred backend.Credentials) (domain.User, error)
}

// Manager creates, resumes and tears down sessions
type Manager struct {
	store   Store
	backend Backend
	ttl     time.Duration    // Upper bound on a record's life
	now     func() time.Time // Clock
}

// NewManager creates a manager; ttl caps how long a record lives even
// when the token carries no expiry of its own.
func NewManager(store Store, b Backend, ttl time.Duration) *Manager {
	return &Manager{store: store, backend: b, ttl: ttl, now: time.Now}
}

// Login exchanges credentials for a new session.
// Any failure is reported as ErrLoginFailed, without detail.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	res, err := m.backend.Login(ctx, email, password)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"email": email,
			"error": err.Error(),
		}).Warn("Login rejected")
		return nil, ErrLoginFailed
	}
	s, err := m.start(ctx, res)
	if err != nil {
		logrus.WithError(err).Error("Failed to start session")
		return nil, ErrLoginFailed
	}
	return s, nil
}

// Register creates an account and a session for it. The requested admin
// flag is passed through unchanged; the backend decides whether to honor it.
func (m *Manager) Register(ctx context.Context, reg domain.Registration) (*Session, error) {
	res, err := m.backend.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	if reg.IsAdmin {
		logrus.WithFields(logrus.Fields{
			"email":   reg.Email,
			"granted": res.User.IsAdmin,
		}).Warn("Registration requested admin rights")
	}
	s, err := m.start(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	return s, nil
}

// start persists a fresh record for an auth result
func (m *Manager) start(ctx context.Context, res backend.AuthResult) (*Session, error) {
	if res.AccessToken == "" {
		return nil, errors.New("session: backend returned no token")
	}
	now := m.now()
	expires := now.Add(m.ttl)
	if exp, ok := utils.TokenExpiry(res.AccessToken); ok && exp.Before(expires) {
		expires = exp
	}
	id := uuid.NewString()
	rec := &domain.SessionRecord{
		ID:        HashID(id),
		Token:     res.AccessToken,
		ExpiresAt: expires,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	user := res.User
	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"is_admin":   user.IsAdmin,
		"expires_at": expires.Format(time.RFC3339),
	}).Info("Session started")
	return &Session{ID: id, Record: rec, User: &user}, nil
}

// Resume loads the session behind a cookie value and resolves its user.
// A record whose token is already past its exp claim is torn down
// without asking the backend.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	rec, err := m.store.Load(ctx, HashID(id))
	if err != nil {
		return nil, err
	}
	s := &Session{ID: id, Record: rec}
	now := m.now()
	if !rec.ExpiresAt.After(now) || utils.TokenExpired(rec.Token, now) {
		_ = m.Logout(ctx, s)
		return nil, ErrSessionExpired
	}
	if err := m.RefreshProfile(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// RefreshProfile re-fetches the user with the stored token.
// An authorization failure logs the session out.
func (m *Manager) RefreshProfile(ctx context.Context, s *Session) error {
	user, err := m.backend.Me(ctx, s)
	if errors.Is(err, backend.ErrUnauthorized) {
		_ = m.Logout(ctx, s)
		return ErrSessionExpired
	}
	if err != nil {
		return fmt.Errorf("session: refresh profile: %w", err)
	}
	s.User = &user
	return nil
}

// Logout forgets the token both in the store and on s
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	if s == nil || s.Record == nil {
		return nil
	}
	id := s.Record.ID
	userID := ""
	if s.User != nil {
		userID = s.User.ID
	}
	s.Record = nil
	s.User = nil
	s.ID = ""
	if err := m.store.Delete(ctx, id); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to delete session")
		return err
	}
	logrus.WithField("user_id", userID).Info("Session ended")
	return nil
}

// End removes the session behind a cookie value. It never contacts the
// backend, so it works while the backend is down.
func (m *Manager) End(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, HashID(id)); err != nil {
		logrus.WithError(err).Error("Failed to delete session")
		return err
	}
	logrus.Info("Session ended")
	return nil
}

// Save persists pending notices and drafts
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if !s.Authenticated() {
		return nil
	}
	s.Record.UpdatedAt = m.now()
	return m.store.Save(ctx, s.Record)
}
