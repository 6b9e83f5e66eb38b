package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

// keyFile is the device key file name inside the data directory.
const keyFile = "device.key"

// ErrSealedCorrupt is returned when a sealed value cannot be decoded or authenticated.
var ErrSealedCorrupt = errors.New("store: sealed value corrupt")

// Sealer encrypts small strings at rest with ChaCha20-Poly1305. It stands in
// for the platform keystore: the session backup blob is never written in the
// clear.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer returns a Sealer using the given 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("store: sealer key: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// LoadOrCreateKey reads the device key from dir, generating and persisting a
// new one (0600) on first run.
func LoadOrCreateKey(dir string) ([]byte, error) {
	path := filepath.Join(dir, keyFile)
	key, err := os.ReadFile(path)
	if err == nil && len(key) == chacha20poly1305.KeySize {
		return key, nil
	}
	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("store: write device key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext and returns a base64 string of nonce||ciphertext.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal. Returns ErrSealedCorrupt when the
// value is malformed or fails authentication.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrSealedCorrupt
	}
	n := s.aead.NonceSize()
	if len(raw) < n {
		return "", ErrSealedCorrupt
	}
	plaintext, err := s.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", ErrSealedCorrupt
	}
	return string(plaintext), nil
}
