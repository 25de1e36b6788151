package tokenhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	algorithmID = "pbkdf2-sha256"

	minIterations = 10_000
	minSaltLength = 8
	minKeyLength  = 16

	// Defaults match Spring Security's PBKDF2 encoder settings the stored
	// hashes were originally produced with.
	defaultIterations = 210_000
	defaultSaltLength = 16
	defaultKeyLength  = 32
)

// Config holds the PBKDF2 cost parameters. Zero values take the package
// defaults; [NewPBKDF2] rejects parameters below the enforced minimums.
type Config struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// PBKDF2 is a one-way, salted hasher for refresh-token secrets. The secrets
// are high-entropy signed tokens, not user passwords, but the stored hash
// still must resist offline brute force if the credential store leaks.
type PBKDF2 struct {
	config Config
}

type parsedHash struct {
	iterations int
	salt       []byte
	hash       []byte
}

// NewPBKDF2 validates cfg, applies defaults for zero values, and returns a
// hasher safe for unlimited concurrent use.
func NewPBKDF2(cfg Config) (*PBKDF2, error) {
	if cfg.Iterations == 0 {
		cfg.Iterations = defaultIterations
	}
	if cfg.SaltLength == 0 {
		cfg.SaltLength = defaultSaltLength
	}
	if cfg.KeyLength == 0 {
		cfg.KeyLength = defaultKeyLength
	}

	if cfg.Iterations < minIterations {
		return nil, errors.New("iteration count below minimum")
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("salt length below minimum")
	}
	if cfg.KeyLength < minKeyLength {
		return nil, errors.New("key length below minimum")
	}

	return &PBKDF2{config: cfg}, nil
}

// Hash derives a salted one-way hash of secret and encodes it as
// $pbkdf2-sha256$i=<iterations>$<salt>$<hash> with standard base64.
func (p *PBKDF2) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}

	salt := make([]byte, p.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	hash := pbkdf2.Key([]byte(secret), salt, p.config.Iterations, p.config.KeyLength, sha256.New)

	return fmt.Sprintf(
		"$%s$i=%d$%s$%s",
		algorithmID,
		p.config.Iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(hash),
	), nil
}

// Matches reports whether secret corresponds to encodedHash using a
// constant-time comparison. An empty or malformed encodedHash never matches;
// "no stored token" is not a match.
func (p *PBKDF2) Matches(secret, encodedHash string) bool {
	if secret == "" || encodedHash == "" {
		return false
	}

	parsed, err := parseEncoded(encodedHash)
	if err != nil {
		return false
	}

	computed := pbkdf2.Key([]byte(secret), parsed.salt, parsed.iterations, len(parsed.hash), sha256.New)

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1
}

func parseEncoded(encodedHash string) (*parsedHash, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 5 || parts[0] != "" {
		return nil, errors.New("invalid hash format")
	}
	if parts[1] != algorithmID {
		return nil, errors.New("unsupported algorithm")
	}
	if !strings.HasPrefix(parts[2], "i=") {
		return nil, errors.New("missing iteration count")
	}

	iterations, err := strconv.Atoi(strings.TrimPrefix(parts[2], "i="))
	if err != nil || iterations < minIterations {
		return nil, errors.New("invalid iteration count")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(salt) < minSaltLength {
		return nil, errors.New("invalid salt")
	}

	hash, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil || len(hash) < minKeyLength {
		return nil, errors.New("invalid hash")
	}

	return &parsedHash{iterations: iterations, salt: salt, hash: hash}, nil
}
