// Package kvstoretest provides test doubles for kvstore.Store.
package kvstoretest

import (
	"context"
	"sync"

	"github.com/kbukum/simplemovies/kvstore"
)

// SetCall records one Set.
type SetCall struct {
	Key   string
	Value []byte
}

// Spy records writes and syncs. It stores values in memory so reads see
// earlier writes. SetErr and SyncErr make the matching calls fail.
type Spy struct {
	SetErr  error
	SyncErr error

	mu        sync.Mutex
	mem       *kvstore.Memory
	sets      []SetCall
	deletes   []string
	syncCalls int
}

// NewSpy creates an empty Spy.
func NewSpy() *Spy {
	return &Spy{mem: kvstore.NewMemory()}
}

func (s *Spy) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.mem.Get(ctx, key)
}

func (s *Spy) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.sets = append(s.sets, SetCall{Key: key, Value: append([]byte{}, value...)})
	err := s.SetErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.mem.Set(ctx, key, value)
}

func (s *Spy) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, key)
	s.mu.Unlock()
	return s.mem.Delete(ctx, key)
}

func (s *Spy) Sync(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncCalls++
	return s.SyncErr
}

// SetCalled reports whether Set was called.
func (s *Spy) SetCalled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets) > 0
}

// LastSet returns the most recent Set call.
func (s *Spy) LastSet() (SetCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sets) == 0 {
		return SetCall{}, false
	}
	return s.sets[len(s.sets)-1], true
}

// SyncCalled reports whether Sync was called.
func (s *Spy) SyncCalled() bool {
	return s.SyncCalls() > 0
}

// SyncCalls returns the number of Sync calls.
func (s *Spy) SyncCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncCalls
}

// Deletes returns the deleted keys in call order.
func (s *Spy) Deletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.deletes...)
}

var _ kvstore.Store = (*Spy)(nil)
