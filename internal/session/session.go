// Package session manages the console's login lifecycle on top of the
// token store. A Manager is constructed explicitly, restored from storage
// once, and then ready.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/civicflow/internal/api"
	"github.com/me/civicflow/internal/logging"
	"github.com/me/civicflow/pkg/model"
)

// State is the manager's lifecycle stage.
type State int

const (
	// StateLoading holds until Restore has read the stored session.
	StateLoading State = iota
	// StateReady means the snapshot reflects storage.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Tokens is the token store as the session sees it.
type Tokens interface {
	ValidToken() string
	CachedUser() *model.Profile
	SetToken(token string, user model.Profile, tier model.Tier) error
	ClearAll()
}

// Snapshot is the session state last observed by the manager.
type Snapshot struct {
	State         State          `json:"-"`
	Authenticated bool           `json:"authenticated"`
	User          *model.Profile `json:"user,omitempty"`
}

// Manager exposes login, logout, and the current user.
type Manager struct {
	tokens  Tokens
	gateway Gateway
	logger  *slog.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// New creates a Manager in the loading state. Call Restore before use.
func New(tokens Tokens, gateway Gateway, logger *slog.Logger) *Manager {
	return &Manager{
		tokens:  tokens,
		gateway: gateway,
		logger:  logging.OrDiscard(logger).With("component", "session"),
	}
}

// Restore reads the stored session once and moves the manager to ready.
func (m *Manager) Restore() Snapshot {
	snap := m.observe()
	m.logger.Debug("session restored", "authenticated", snap.Authenticated)
	return snap
}

// Refresh re-reads storage, e.g. after the gateway cleared it on a 401.
func (m *Manager) Refresh() Snapshot {
	return m.observe()
}

func (m *Manager) observe() Snapshot {
	user := m.tokens.CachedUser()
	snap := Snapshot{
		State:         StateReady,
		Authenticated: m.tokens.ValidToken() != "",
		User:          user,
	}
	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()
	return snap
}

// State returns the lifecycle stage.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.State
}

// Snapshot returns the last observed session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Login authenticates and persists the session into the durable tier when
// remember is set, otherwise into the ephemeral tier. Failures are
// *api.CredentialError carrying a message fit for the user.
func (m *Manager) Login(ctx context.Context, identifier, secret string, remember bool) (*model.Session, error) {
	sess, err := m.gateway.Login(ctx, identifier, secret)
	if err != nil {
		var ce *api.CredentialError
		if !errors.As(err, &ce) {
			ce = &api.CredentialError{Message: "Login failed", Err: err}
		}
		m.logger.Info("login rejected", "error", ce.Message)
		return nil, ce
	}

	sess.Tier = model.TierFor(remember)
	if err := m.tokens.SetToken(sess.Token, sess.User, sess.Tier); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.logger.Info("signed in", "user_id", sess.User.ID, "role", sess.User.Role, "tier", sess.Tier)

	m.mu.Lock()
	user := sess.User
	m.snap = Snapshot{State: StateReady, Authenticated: true, User: &user}
	m.mu.Unlock()
	return sess, nil
}

// Logout ends the session on the server when it can and always clears
// local storage.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.gateway.Logout(ctx); err != nil && !errors.Is(err, api.ErrAuthExpired) {
		m.logger.Warn("remote logout failed", "error", err)
	}
	m.tokens.ClearAll()

	m.mu.Lock()
	m.snap = Snapshot{State: StateReady}
	m.mu.Unlock()
	m.logger.Info("signed out")
}

// CurrentUser returns the stored profile for the current valid token.
func (m *Manager) CurrentUser() *model.Profile {
	return m.tokens.CachedUser()
}

// IsAuthenticated reports whether a valid token is stored.
func (m *Manager) IsAuthenticated() bool {
	return m.tokens.ValidToken() != ""
}
