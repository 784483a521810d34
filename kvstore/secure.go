package kvstore

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/simplemovies/encryption"
)

// Secure encrypts values before handing them to the wrapped Store. Keys are
// stored in the clear.
type Secure struct {
	inner  Store
	cipher encryption.Cipher
}

// NewSecure wraps inner.
func NewSecure(inner Store, c encryption.Cipher) *Secure {
	return &Secure{inner: inner, cipher: c}
}

func (s *Secure) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	v, err := s.cipher.Open(sealed)
	if err != nil {
		return nil, false, fmt.Errorf("kvstore: open %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Secure) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return fmt.Errorf("kvstore: seal %q: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *Secure) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Secure) Sync(ctx context.Context) error {
	return s.inner.Sync(ctx)
}

// Unwrap returns the wrapped Store.
func (s *Secure) Unwrap() Store { return s.inner }

// Close closes the wrapped Store if it holds resources.
func (s *Secure) Close() error {
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
