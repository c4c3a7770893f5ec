// Package phonecrypt seals player phone numbers before they are written to the
// database and opens them again on the way out.
package phonecrypt

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const prefix = "enc:v1:"

var hkdfInfo = []byte("tennis-backend phone number")

var ErrMalformed = errors.New("phonecrypt: malformed ciphertext")

// Cipher seals values with XChaCha20-Poly1305. A nil *Cipher passes values through
// unchanged, which is what an empty key configures.
type Cipher struct {
	aead cipher.AEAD
}

// New derives a 256-bit key from passphrase. An empty passphrase returns a nil Cipher.
func New(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, nil
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(passphrase), nil, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("phonecrypt: derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("phonecrypt: init cipher: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

func (c *Cipher) Seal(plaintext string) (string, error) {
	if c == nil {
		return plaintext, nil
	}

	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("phonecrypt: nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return prefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// IsSealed reports whether s carries the prefix Seal writes.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, prefix)
}

// Open reverses Seal. Values without the sealed prefix are returned as stored so rows
// written before a key was configured stay readable. A nil Cipher returns every value
// as stored.
func (c *Cipher) Open(stored string) (string, error) {
	if c == nil || !IsSealed(stored) {
		return stored, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(stored, prefix))
	if err != nil {
		return "", ErrMalformed
	}
	if len(raw) < c.aead.NonceSize() {
		return "", ErrMalformed
	}

	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("phonecrypt: open: %w", err)
	}
	return string(plaintext), nil
}
