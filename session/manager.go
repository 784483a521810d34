package session

import (
	"context"
	"sync"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/kvstore"
	"github.com/kbukum/simplemovies/logger"
)

// Manager is the production Session.
type Manager struct {
	auth     Authenticator
	verifier TokenVerifier
	store    kvstore.Store
	log      *logger.Logger

	mu   sync.RWMutex
	user *LoggedUser
}

// NewManager creates a logged-out Manager. store should be the secure store.
func NewManager(auth Authenticator, verifier TokenVerifier, store kvstore.Store, log *logger.Logger) *Manager {
	return &Manager{auth: auth, verifier: verifier, store: store, log: log.WithComponent("session")}
}

// CurrentUser implements Session. The result is a copy.
func (m *Manager) CurrentUser() *LoggedUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsValid implements Session.
func (m *Manager) IsValid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.Token != ""
}

// Login implements Session. Any failure leaves nobody logged in. The token is
// persisted before the user becomes current.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	resp, err := m.auth.Authenticate(ctx, username, password)
	if err != nil {
		m.user = nil
		return err
	}
	if err := m.persist(ctx, resp.Token); err != nil {
		m.user = nil
		return err
	}

	m.user = &LoggedUser{ID: resp.ID, Username: username, Token: resp.Token}
	m.log.WithContext(ctx).Info("User logged in", logger.Fields(logger.FieldUserID, resp.ID))
	return nil
}

// Logout implements Session. It forgets the persisted token.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	if err := m.store.Delete(ctx, StorageKey); err != nil {
		return apperrors.StorageError(err)
	}
	if err := m.store.Sync(ctx); err != nil {
		return apperrors.StorageError(err)
	}
	m.log.WithContext(ctx).Info("User logged out")
	return nil
}

// Restore logs the persisted user back in if their token still verifies. An
// expired or invalid token is discarded. It reports whether a user was
// restored.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok, err := m.store.Get(ctx, StorageKey)
	if err != nil {
		return false, apperrors.StorageError(err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}

	token := string(raw)
	claims, err := m.verifier.Verify(token)
	if err != nil {
		m.log.WithContext(ctx).Info("Discarding persisted session", logger.Fields(logger.FieldError, err.Error()))
		if err := m.store.Delete(ctx, StorageKey); err != nil {
			return false, apperrors.StorageError(err)
		}
		return false, nil
	}

	m.user = &LoggedUser{ID: claims.Subject, Username: claims.Username, Token: token}
	m.log.WithContext(ctx).Debug("Session restored", logger.Fields(logger.FieldUserID, claims.Subject))
	return true, nil
}

func (m *Manager) persist(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, StorageKey, []byte(token)); err != nil {
		return apperrors.StorageError(err)
	}
	if err := m.store.Sync(ctx); err != nil {
		return apperrors.StorageError(err)
	}
	return nil
}

var _ Session = (*Manager)(nil)
