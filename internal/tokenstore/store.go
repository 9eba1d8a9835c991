// Package tokenstore holds the console's bearer token and cached profile
// across two storage tiers with ephemeral-first precedence.
package tokenstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/civicflow/internal/logging"
	"github.com/me/civicflow/internal/store"
	"github.com/me/civicflow/pkg/model"
)

// Keys are the storage keys used in both tiers.
type Keys struct {
	Token string
	User  string
}

// KeysFor derives the keys for an application name.
func KeysFor(app string) Keys {
	return Keys{Token: app + "_token", User: app + "_user"}
}

// precedence is the lookup order of the tiers.
var precedence = []model.Tier{model.TierEphemeral, model.TierDurable}

// Store is the two-tier token store. Every read goes to the underlying
// storages; nothing is cached in the Store itself.
type Store struct {
	tiers  map[model.Tier]store.Storage
	keys   Keys
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over an ephemeral and a durable storage.
func New(ephemeral, durable store.Storage, keys Keys, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		tiers: map[model.Tier]store.Storage{
			model.TierEphemeral: ephemeral,
			model.TierDurable:   durable,
		},
		keys:   keys,
		now:    time.Now,
		logger: logging.OrDiscard(logger).With("component", "tokenstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Keys returns the storage keys in use.
func (s *Store) Keys() Keys {
	return s.keys
}

// Tier returns the storage backing a tier.
func (s *Store) Tier(t model.Tier) store.Storage {
	return s.tiers[t]
}

// ValidToken returns the first valid token in precedence order, or "".
// An invalid token found on the way is removed from its tier together with
// that tier's cached user.
func (s *Store) ValidToken() string {
	token, _, _ := s.Lookup()
	return token
}

// Lookup is ValidToken that also reports the tier holding the token.
func (s *Store) Lookup() (string, model.Tier, bool) {
	now := s.now()
	for _, tier := range precedence {
		storage := s.tiers[tier]
		token, ok := storage.Get(s.keys.Token)
		if !ok {
			continue
		}
		if IsValid(token, now) {
			return token, tier, true
		}
		s.logger.Debug("discarding invalid token", "tier", tier)
		s.clearTier(tier)
	}
	return "", "", false
}

// SetToken replaces any stored session with token and user in one tier.
// Both tiers are cleared first so no stale identity survives in the other.
func (s *Store) SetToken(token string, user model.Profile, tier model.Tier) error {
	storage, ok := s.tiers[tier]
	if !ok {
		return fmt.Errorf("unknown storage tier %q", tier)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	s.ClearAll()
	if err := storage.Set(s.keys.Token, token); err != nil {
		return fmt.Errorf("store token in %s tier: %w", tier, err)
	}
	if err := storage.Set(s.keys.User, string(data)); err != nil {
		s.clearTier(tier)
		return fmt.Errorf("store user in %s tier: %w", tier, err)
	}
	s.logger.Debug("token stored", "tier", tier, "user_id", user.ID)
	return nil
}

// CachedUser returns the profile stored alongside the current valid token,
// or nil when there is none or it cannot be decoded.
func (s *Store) CachedUser() *model.Profile {
	_, tier, ok := s.Lookup()
	if !ok {
		return nil
	}
	raw, ok := s.tiers[tier].Get(s.keys.User)
	if !ok {
		return nil
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("cached user unreadable", "tier", tier, "error", err)
		return nil
	}
	return &p
}

// ClearAll removes token and user from both tiers.
func (s *Store) ClearAll() {
	for _, tier := range precedence {
		s.clearTier(tier)
	}
}

func (s *Store) clearTier(tier model.Tier) {
	storage := s.tiers[tier]
	for _, key := range []string{s.keys.Token, s.keys.User} {
		if err := storage.Remove(key); err != nil {
			s.logger.Warn("remove stored value", "tier", tier, "key", key, "error", err)
		}
	}
}
