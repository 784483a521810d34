package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// NewAESGCM returns an AES-256-GCM cipher.
func NewAESGCM(passphrase string) (*AEAD, error) {
	block, err := aes.NewCipher(deriveKey(passphrase))
	if err != nil {
		return nil, fmt.Errorf("encryption: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption: create GCM: %w", err)
	}
	return &AEAD{aead: gcm}, nil
}
