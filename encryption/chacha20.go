package encryption

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// NewChaCha20 returns an XChaCha20-Poly1305 cipher. The extended 24-byte
// nonce keeps random nonces safe for long-lived keys.
func NewChaCha20(passphrase string) (*AEAD, error) {
	aead, err := chacha20poly1305.NewX(deriveKey(passphrase))
	if err != nil {
		return nil, fmt.Errorf("encryption: create chacha20: %w", err)
	}
	return &AEAD{aead: aead}, nil
}
