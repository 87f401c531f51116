package middleware_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/persistence/middleware"
	"github.com/aretw0/wayfinder/pkg/ports"
)

const document = `{"settings":{"secret":"my-secret-sauce"},"rules":[]}`

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunConfigCacheContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secure := mw(underlying)

	ctx := context.Background()
	key := "https://example.com/config.json"

	// 1. Set
	if err := secure.Set(ctx, key, []byte(document)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// 2. Verify underlying cache directly (should be encrypted)
	stored, err := underlying.Get(ctx, key)
	if err != nil {
		t.Fatalf("Underlying get failed: %v", err)
	}
	if bytes.Contains(stored, []byte("my-secret-sauce")) {
		t.Fatalf("Expected secret to be hidden, found: %s", stored)
	}
	if !bytes.Contains(stored, []byte("__encrypted__")) {
		t.Fatal("Expected __encrypted__ envelope")
	}

	// 3. Get via middleware (should be decrypted)
	loaded, err := secure.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get via middleware failed: %v", err)
	}
	if string(loaded) != document {
		t.Errorf("Expected %s, got %s", document, loaded)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)

	ctx := context.Background()
	key := "rotation"

	// 1. Set with OLD key
	if err := secureOld.Set(ctx, key, []byte("encrypted-with-old-key")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// 2. Get with NEW key (Active) + OLD key (Fallback)
	secureNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := secureNew.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get with rotated key failed: %v", err)
	}
	if string(loaded) != "encrypted-with-old-key" {
		t.Errorf("Decryption with fallback key failed")
	}

	// 3. Set again (now encrypted with NEW key)
	if err := secureNew.Set(ctx, key, []byte("encrypted-with-new-key")); err != nil {
		t.Fatalf("Set with new key failed: %v", err)
	}

	// 4. Verify we CANNOT get with just OLD key anymore
	if _, err := secureOld.Get(ctx, key); err == nil {
		t.Error("Expected failure when reading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_RejectsPlainDocument(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()

	if err := underlying.Set(ctx, "plain", []byte(document)); err != nil {
		t.Fatal(err)
	}
	if _, err := secure.Get(ctx, "plain"); err == nil {
		t.Error("Expected plain document to be rejected")
	}
}

func TestEncryptionMiddleware_MissPassesThrough(t *testing.T) {
	secure := middleware.Chain(memory.NewStore(),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}))

	_, err := secure.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}
