// Package console wires the token store, gateway, session, and access
// rules into one application shell shared by the CLI and the web console.
package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/internal/api"
	"github.com/me/civicflow/internal/config"
	"github.com/me/civicflow/internal/logging"
	"github.com/me/civicflow/internal/session"
	"github.com/me/civicflow/internal/store"
	"github.com/me/civicflow/internal/tokenstore"
	"github.com/me/civicflow/pkg/model"
)

// Navigator performs a replace-navigation in the UI layer.
type Navigator interface {
	Replace(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Replace calls f(path).
func (f NavigatorFunc) Replace(path string) { f(path) }

// Deps are the collaborators the shell is built from.
type Deps struct {
	Config    config.Config
	Ephemeral store.Storage
	Durable   store.Storage
	Navigator Navigator
	Logger    *slog.Logger
}

// Console is the constructed application shell.
type Console struct {
	Tokens  *tokenstore.Store
	API     *api.Client
	Session *session.Manager

	nav         Navigator
	logger      *slog.Logger
	unsubscribe func()
	closeOnce   sync.Once

	// expired is set once the login redirect for the current session has
	// been issued, so concurrent 401s from one grouped fetch navigate once.
	mu      sync.Mutex
	expired bool
}

// New builds the shell: storages, token store, gateway, session. The
// session is restored before New returns, so the console starts ready.
func New(d Deps) *Console {
	logger := logging.OrDiscard(d.Logger)
	nav := d.Navigator
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}

	tokens := tokenstore.New(d.Ephemeral, d.Durable, tokenstore.KeysFor(d.Config.AppName), logger)
	client := api.New(d.Config, tokens, logger)
	mgr := session.New(tokens, client, logger)

	c := &Console{
		Tokens:  tokens,
		API:     client,
		Session: mgr,
		nav:     nav,
		logger:  logger.With("component", "console"),
	}
	c.unsubscribe = client.OnAuthExpired(c.authExpired)
	mgr.Restore()
	return c
}

// Close detaches the shell from the gateway.
func (c *Console) Close() {
	c.closeOnce.Do(c.unsubscribe)
}

func (c *Console) authExpired() {
	c.Session.Refresh()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired {
		return
	}
	c.expired = true
	c.logger.Info("session expired, returning to login")
	c.nav.Replace(access.PathLogin)
}

func (c *Console) rearm() {
	c.mu.Lock()
	c.expired = false
	c.mu.Unlock()
}

// Login signs in and persists the session in the tier chosen by remember.
func (c *Console) Login(ctx context.Context, identifier, secret string, remember bool) (*model.Session, error) {
	sess, err := c.Session.Login(ctx, identifier, secret, remember)
	if err != nil {
		return nil, err
	}
	c.rearm()
	return sess, nil
}

// Logout ends the session.
func (c *Console) Logout(ctx context.Context) {
	c.Session.Logout(ctx)
}

// Principal is the current navigator as the access rules see it.
func (c *Console) Principal() access.Principal {
	p := access.PrincipalFor(c.Session.Refresh().User)
	if p.Authenticated {
		c.rearm()
	}
	return p
}

// Navigate decides whether path may be shown to the current user.
func (c *Console) Navigate(path string) access.Decision {
	p := c.Principal()
	d := access.Decide(p, path)
	if !d.Permit {
		c.logger.Debug("navigation redirected", "path", path, "to", d.Redirect, "role", p.Role)
	}
	return d
}

// Navigation returns the sidebar for the current user.
func (c *Console) Navigation() []access.NavItem {
	return access.Navigation(c.Principal().Role)
}

// requireUser returns the signed-in profile or api.ErrNotAuthenticated.
func (c *Console) requireUser() (*model.Profile, error) {
	user := c.Session.CurrentUser()
	if user == nil {
		return nil, api.ErrNotAuthenticated
	}
	return user, nil
}

// User returns the signed-in profile.
func (c *Console) User(ctx context.Context) (*model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.requireUser()
}
