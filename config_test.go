package authcore

import (
	"testing"
	"time"

	"github.com/studyapp/authcore/account"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.JWT.AccessTTL != 5*time.Minute {
		t.Fatalf("expected 5m access TTL, got %v", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != 60*time.Minute {
		t.Fatalf("expected 60m refresh TTL, got %v", cfg.JWT.RefreshTTL)
	}
	if cfg.JWT.Issuer != "self" {
		t.Fatalf("expected issuer self, got %q", cfg.JWT.Issuer)
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	store := account.NewMemoryStore()

	mutations := map[string]func(*Config){
		"zero access TTL":  func(c *Config) { c.JWT.AccessTTL = 0 },
		"zero refresh TTL": func(c *Config) { c.JWT.RefreshTTL = 0 },
		"refresh shorter than access": func(c *Config) {
			c.JWT.AccessTTL = time.Hour
			c.JWT.RefreshTTL = time.Minute
		},
		"empty issuer":     func(c *Config) { c.JWT.Issuer = "" },
		"missing keys":     func(c *Config) { c.JWT.PrivateKey, c.JWT.PublicKey = nil, nil },
		"garbage key pair": func(c *Config) { c.JWT.PrivateKey = []byte("not a key") },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			mutate(&cfg)
			if _, err := New().WithConfig(cfg).WithAccountStore(store).Build(); err == nil {
				t.Fatal("expected Build to fail")
			}
		})
	}
}

func TestBuildRequiresAccountStore(t *testing.T) {
	if _, err := New().WithConfig(testConfig(t)).Build(); err == nil {
		t.Fatal("expected Build to fail without an account store")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithConfig(testConfig(t)).WithAccountStore(account.NewMemoryStore())

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}
