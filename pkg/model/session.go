package model

// Tier identifies which storage location holds a session.
type Tier string

const (
	// TierEphemeral is cleared when the login session ends.
	TierEphemeral Tier = "ephemeral"
	// TierDurable survives restarts.
	TierDurable Tier = "durable"
)

// String returns the tier name.
func (t Tier) String() string {
	return string(t)
}

// TierFor returns the tier a login should persist into.
func TierFor(remember bool) Tier {
	if remember {
		return TierDurable
	}
	return TierEphemeral
}

// Session represents the authenticated principal.
type Session struct {
	Token string  `json:"-"` // bearer token (never serialized)
	User  Profile `json:"user"`
	Tier  Tier    `json:"tier"`
}

// Role returns the session's role.
func (s *Session) Role() Role {
	return s.User.Role
}
