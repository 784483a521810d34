// Package encryption seals small values at rest with an AEAD cipher.
//
// Keys are derived from a passphrase with SHA-256. The default algorithm is
// XChaCha20-Poly1305; AES-256-GCM is available for hosts with AES-NI.
//
//	c, err := encryption.New(passphrase)
//	sealed, err := c.Seal([]byte(token))
//	token, err := c.Open(sealed)
package encryption
