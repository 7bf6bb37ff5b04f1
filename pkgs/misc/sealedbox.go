// Package misc holds small crypto helpers shared by the gateway packages.
package misc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

// SealedBox encrypts short strings with AES-GCM so the gateway can hand out
// nonces without keeping server-side state. The key is derived from a
// configured secret; the box itself is stateless and safe for concurrent use.
type SealedBox struct {
	aead cipher.AEAD
}

func NewSealedBox(secret []byte) (*SealedBox, error) {
	if len(secret) == 0 {
		return nil, errors.New("sealedbox: empty secret")
	}
	key := sha256.Sum256(secret)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &SealedBox{aead: aead}, nil
}

// Seal encrypts plaintext and returns a base64 token with the GCM nonce
// prepended.
func (b *SealedBox) Seal(plaintext string) (string, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	out := b.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Open decrypts a token produced by Seal. Any tampering fails authentication.
func (b *SealedBox) Open(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	if len(raw) < b.aead.NonceSize() {
		return "", errors.New("sealedbox: token too short")
	}
	nonce, sealed := raw[:b.aead.NonceSize()], raw[b.aead.NonceSize():]
	plain, err := b.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
