// Package favorites keeps the user's favorite movies in a kvstore.Store.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/kvstore"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/movies"
)

// StorageKey is the key the list is stored under.
const StorageKey = "favorites"

// Store is the favorites capability.
type Store interface {
	Load(ctx context.Context)
	Items() []movies.Movie
	IsFavorite(imdbID string) bool
	Add(ctx context.Context, m movies.Movie) error
	Remove(ctx context.Context, imdbID string) error
}

// Manager is the production Store. The in-memory list only changes after
// the new list has been written and synced.
type Manager struct {
	store kvstore.Store
	log   *logger.Logger

	mu    sync.RWMutex
	items []movies.Movie
}

// NewManager creates an empty Manager. Call Load to read persisted items.
func NewManager(store kvstore.Store, log *logger.Logger) *Manager {
	return &Manager{store: store, log: log.WithComponent("favorites")}
}

// Load replaces the in-memory list with the persisted one. Missing or
// unreadable data leaves the list empty.
func (m *Manager) Load(ctx context.Context) {
	items := []movies.Movie{}
	raw, ok, err := m.store.Get(ctx, StorageKey)
	switch {
	case err != nil:
		m.log.WithContext(ctx).Warn("Could not read favorites", logger.ErrorFields("load", err))
	case ok:
		if err := json.Unmarshal(raw, &items); err != nil {
			m.log.WithContext(ctx).Warn("Discarding unreadable favorites", logger.ErrorFields("load", err))
			items = []movies.Movie{}
		}
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	m.log.WithContext(ctx).Debug("Favorites loaded", logger.Fields("count", len(items)))
}

// Items returns a copy of the list in insertion order.
func (m *Manager) Items() []movies.Movie {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]movies.Movie{}, m.items...)
}

// IsFavorite reports whether imdbID is in the list.
func (m *Manager) IsFavorite(imdbID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return indexOf(m.items, imdbID) >= 0
}

// Add appends mv. Adding an ID that is already present does nothing.
func (m *Manager) Add(ctx context.Context, mv movies.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if indexOf(m.items, mv.ImdbID) >= 0 {
		return nil
	}
	next := append(append(make([]movies.Movie, 0, len(m.items)+1), m.items...), mv)
	if err := m.sync(ctx, next); err != nil {
		return err
	}
	m.log.WithContext(ctx).Info("Favorite added", logger.Fields(logger.FieldIMDbID, mv.ImdbID, logger.FieldTitle, mv.Title))
	return nil
}

// Remove deletes imdbID from the list. It returns a NOT_FOUND AppError when
// the ID is not a favorite.
func (m *Manager) Remove(ctx context.Context, imdbID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOf(m.items, imdbID)
	if i < 0 {
		return errors.NotFound("favorite", imdbID)
	}
	next := append(append(make([]movies.Movie, 0, len(m.items)-1), m.items[:i]...), m.items[i+1:]...)
	if err := m.sync(ctx, next); err != nil {
		return err
	}
	m.log.WithContext(ctx).Info("Favorite removed", logger.Fields(logger.FieldIMDbID, imdbID))
	return nil
}

// sync persists next and, on success, makes it the current list. Callers
// hold m.mu.
func (m *Manager) sync(ctx context.Context, next []movies.Movie) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return errors.Internal(fmt.Errorf("encode favorites: %w", err))
	}
	if err := m.store.Set(ctx, StorageKey, raw); err != nil {
		return errors.StorageError(err)
	}
	if err := m.store.Sync(ctx); err != nil {
		return errors.StorageError(err)
	}
	m.items = next
	return nil
}

func indexOf(items []movies.Movie, imdbID string) int {
	for i, it := range items {
		if it.ImdbID == imdbID {
			return i
		}
	}
	return -1
}

var _ Store = (*Manager)(nil)
