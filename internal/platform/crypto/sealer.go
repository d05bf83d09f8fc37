// File: internal/platform/crypto/sealer.go
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF info labels. Each purpose gets an independent key from the same secret.
const (
	InfoSessionEncryption = "kudos-session-encryption"
	InfoSessionSigning    = "kudos-session-signing"
)

// ErrUnsealFailed is returned when no configured key can open a sealed value.
var ErrUnsealFailed = errors.New("crypto: unable to unseal value")

// DeriveKey expands secret into n bytes bound to info.
func DeriveKey(secret, info string, n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %q key: %w", info, err)
	}
	return key, nil
}

// GenerateSecureRandomString creates a cryptographically secure random string
// from n bytes of randomness, URL-safe base64 encoded without padding.
func GenerateSecureRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Sealer encrypts with the first secret and decrypts with any of them,
// so a secret can be rotated without logging everyone out.
type Sealer struct {
	aeads []cipher.AEAD
}

// NewSealer builds an AES-256-GCM sealer. secrets[0] is the active secret.
func NewSealer(secrets ...string) (*Sealer, error) {
	if len(secrets) == 0 {
		return nil, errors.New("crypto: at least one secret is required")
	}
	s := &Sealer{}
	for _, secret := range secrets {
		key, err := DeriveKey(secret, InfoSessionEncryption, 32)
		if err != nil {
			return nil, err
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		s.aeads = append(s.aeads, aead)
	}
	return s, nil
}

// Seal encrypts plaintext and returns nonce||ciphertext as unpadded base64url.
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	aead := s.aeads[0]
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal, trying the active secret first.
func (s *Sealer) Open(value string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, ErrUnsealFailed
	}
	for _, aead := range s.aeads {
		ns := aead.NonceSize()
		if len(raw) < ns+aead.Overhead() {
			return nil, ErrUnsealFailed
		}
		if plaintext, err := aead.Open(nil, raw[:ns], raw[ns:], nil); err == nil {
			return plaintext, nil
		}
	}
	return nil, ErrUnsealFailed
}
