package session

import (
	"context"

	"github.com/me/civicflow/pkg/model"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=gateway.go -destination=../mocks/gateway.go -package=mocks

// Gateway is the part of the backend API the session needs.
type Gateway interface {
	// Login exchanges credentials for a session. It is sent without a
	// bearer token; the returned session has no tier.
	Login(ctx context.Context, identifier, secret string) (*model.Session, error)
	// Logout ends the session on the server.
	Logout(ctx context.Context) error
}
