package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ConfigCache
	config EncryptionConfig
}

// envelope is what the wrapped cache stores in place of the document.
type envelope struct {
	Encrypted string `json:"__encrypted__"`
}

// NewEncryptionMiddleware creates a middleware that encrypts cached documents using AES-GCM.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.ConfigCache) ports.ConfigCache {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Set(ctx context.Context, key string, data []byte) error {
	ciphertext, err := encrypt(data, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt document: %w", err)
	}

	sealed, err := json.Marshal(envelope{Encrypted: base64.StdEncoding.EncodeToString(ciphertext)})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return m.next.Set(ctx, key, sealed)
}

func (m *encryptionMiddleware) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := m.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Plain documents are rejected, never passed through.
	var env envelope
	if err := json.Unmarshal(sealed, &env); err != nil || env.Encrypted == "" {
		return nil, errors.New("cached document is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	// Try Active, then Fallback
	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt document: %w", err)
	}
	return plainText, nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
