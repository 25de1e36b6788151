package authcore

import (
	"errors"
	"time"
)

// Config is the process-wide configuration handed to [Builder.WithConfig].
// It is explicit constructor state, never ambient: key material and TTLs are
// supplied once at startup with no hot reload.
type Config struct {
	JWT       JWTConfig
	TokenHash TokenHashConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// JWTConfig holds the asymmetric key pair source and both token lifetimes.
type JWTConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
	PrivateKey []byte // PEM-encoded RSA private key
	PublicKey  []byte // PEM-encoded RSA public key
	Leeway     time.Duration
}

// TokenHashConfig holds the PBKDF2 cost parameters for refresh-token hashes.
// Zero values take the tokenhash package defaults.
type TokenHashConfig struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig enables the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the baseline configuration: 5-minute access tokens,
// 60-minute refresh tokens, issuer "self". Key material must still be set.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  5 * time.Minute,
			RefreshTTL: 60 * time.Minute,
			Issuer:     "self",
		},
		Audit: AuditConfig{
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func (c *Config) validate() error {
	if c.JWT.AccessTTL <= 0 {
		return errors.New("access TTL must be positive")
	}
	if c.JWT.RefreshTTL <= 0 {
		return errors.New("refresh TTL must be positive")
	}
	if c.JWT.RefreshTTL < c.JWT.AccessTTL {
		return errors.New("refresh TTL must not be shorter than access TTL")
	}
	if c.JWT.Issuer == "" {
		return errors.New("issuer must not be empty")
	}
	if len(c.JWT.PrivateKey) == 0 || len(c.JWT.PublicKey) == 0 {
		return errors.New("rsa key pair must be configured")
	}
	return nil
}
