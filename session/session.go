package session

import (
	"context"
)

// StorageKey is where the session token is persisted.
const StorageKey = "session_token_key"

// LoggedUser is the authenticated user.
type LoggedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"-"`
}

// LoginResponse is what a successful authentication returns.
type LoginResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Session is the current-user capability.
type Session interface {
	// CurrentUser returns nil when nobody is logged in.
	CurrentUser() *LoggedUser
	// IsValid reports whether a user with a non-empty token is logged in.
	IsValid() bool
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

// Authenticator checks credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (LoginResponse, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, username, password string) (LoginResponse, error)

// Authenticate implements Authenticator.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, username, password string) (LoginResponse, error) {
	return f(ctx, username, password)
}
