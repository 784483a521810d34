package session

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/logger"
)

// dummyHash is compared against for unknown usernames so their response
// time matches a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, _ := bcrypt.GenerateFromPassword([]byte("simplemovies-unknown-user"), DefaultCost)
	return string(h)
})

// LocalAuthenticator checks credentials against configured users.
type LocalAuthenticator struct {
	users  map[string]User
	tokens *Tokens
	log    *logger.Logger
}

// NewLocalAuthenticator creates a LocalAuthenticator.
func NewLocalAuthenticator(users []User, tokens *Tokens, log *logger.Logger) *LocalAuthenticator {
	byName := make(map[string]User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &LocalAuthenticator{users: byName, tokens: tokens, log: log.WithComponent("auth")}
}

// Authenticate implements Authenticator. Any credential failure is an
// UNAUTHORIZED AppError with the same message.
func (a *LocalAuthenticator) Authenticate(ctx context.Context, username, password string) (LoginResponse, error) {
	if err := ctx.Err(); err != nil {
		return LoginResponse{}, err
	}

	user, ok := a.users[username]
	hash := user.PasswordHash
	if !ok {
		hash = dummyHash()
	}
	if err := VerifyPassword(password, hash); err != nil || !ok {
		a.log.WithContext(ctx).Warn("Login rejected", logger.Fields("username", username))
		return LoginResponse{}, apperrors.Unauthorized("invalid username or password")
	}

	token, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return LoginResponse{}, apperrors.Internal(err)
	}
	a.log.WithContext(ctx).Info("Login accepted", logger.Fields(logger.FieldUserID, user.ID))
	return LoginResponse{ID: user.ID, Token: token}, nil
}

var _ Authenticator = (*LocalAuthenticator)(nil)
