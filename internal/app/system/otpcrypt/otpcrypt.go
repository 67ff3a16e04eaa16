// internal/app/system/otpcrypt/otpcrypt.go

// Package otpcrypt is the reversible transform applied to pocket one-time
// codes before they are persisted. Codes are sealed with
// ChaCha20-Poly1305 under a process-wide key and stored as base64.
package otpcrypt

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher seals and opens pocket one-time codes.
type Cipher struct {
	key []byte
}

// New creates a Cipher. The key must be exactly 32 bytes.
func New(key []byte) (*Cipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("otpcrypt: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &Cipher{key: key}, nil
}

// NewFromHex creates a Cipher from a 64-char hex string, the form the key
// takes in configuration.
func NewFromHex(hexKey string) (*Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("otpcrypt: invalid hex key: %w", err)
	}
	return New(key)
}

// Encrypt seals plaintext and returns base64(nonce || ciphertext).
// Encrypting the empty string is rejected; callers must treat an absent
// code as absent rather than sealing emptiness.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("otpcrypt: refusing to encrypt empty input")
	}
	aead, err := chacha20poly1305.New(c.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("otpcrypt: nonce generation failed: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. An empty input is rejected; callers pass empty
// codes through untouched instead of decrypting them.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", errors.New("otpcrypt: refusing to decrypt empty input")
	}
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("otpcrypt: invalid base64: %w", err)
	}
	aead, err := chacha20poly1305.New(c.key)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", errors.New("otpcrypt: ciphertext too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("otpcrypt: open failed: %w", err)
	}
	return string(plaintext), nil
}
