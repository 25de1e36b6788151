package authcore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/studyapp/authcore/account"
)

var (
	testKeyOnce sync.Once
	testPrivPEM []byte
	testPubPEM  []byte
)

// testKeyPair generates one RSA pair per test binary; key generation is the
// slowest part of these tests and the pair is never mutated.
func testKeyPair(t *testing.T) (privatePEM, publicPEM []byte) {
	t.Helper()

	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		privDER, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			panic(err)
		}
		pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		if err != nil {
			panic(err)
		}
		testPrivPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
		testPubPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	})

	return testPrivPEM, testPubPEM
}

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.JWT.PrivateKey, cfg.JWT.PublicKey = testKeyPair(t)
	// Low PBKDF2 cost keeps the lifecycle tests fast; production defaults
	// are exercised in the tokenhash package.
	cfg.TokenHash.Iterations = 10_000
	return cfg
}

func newTestEngine(t *testing.T, store account.Store) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(testConfig(t)).
		WithAccountStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func seedAccount(t *testing.T, store *account.MemoryStore, userID string, typ account.Type) {
	t.Helper()

	err := store.Put(account.Record{
		UserID:      userID,
		DisplayName: userID,
		Type:        typ,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", userID, err)
	}
}
