// Package sessiontest provides test doubles for the session package.
package sessiontest

import (
	"context"
	"sync"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/session"
)

// AuthenticatorStub returns a canned response.
type AuthenticatorStub struct {
	Response session.LoginResponse
	Err      error
}

func (s *AuthenticatorStub) Authenticate(context.Context, string, string) (session.LoginResponse, error) {
	return s.Response, s.Err
}

// Fake is an in-memory Session that accepts one username and password.
type Fake struct {
	Username string
	Password string
	// LoginErr, when set, is returned for a wrong password.
	LoginErr error

	mu   sync.Mutex
	user *session.LoggedUser
}

// NewLoggedIn returns a Fake with user already logged in.
func NewLoggedIn(user session.LoggedUser) *Fake {
	return &Fake{Username: user.Username, user: &user}
}

func (f *Fake) CurrentUser() *session.LoggedUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil
	}
	u := *f.user
	return &u
}

func (f *Fake) IsValid() bool {
	u := f.CurrentUser()
	return u != nil && u.Token != ""
}

func (f *Fake) Login(_ context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if username != f.Username || password != f.Password {
		f.user = nil
		if f.LoginErr != nil {
			return f.LoginErr
		}
		return apperrors.Unauthorized("invalid username or password")
	}
	f.user = &session.LoggedUser{ID: "user-" + username, Username: username, Token: "token-" + username}
	return nil
}

func (f *Fake) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = nil
	return nil
}

// VerifierFunc adapts a function to session.TokenVerifier.
type VerifierFunc func(token string) (*session.Claims, error)

func (f VerifierFunc) Verify(token string) (*session.Claims, error) { return f(token) }

var (
	_ session.Authenticator = (*AuthenticatorStub)(nil)
	_ session.Session       = (*Fake)(nil)
	_ session.TokenVerifier = VerifierFunc(nil)
)
