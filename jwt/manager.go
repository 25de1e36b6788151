package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds the signing key pair and token lifetimes. Instances are
// validated by [NewManager] and treated as immutable afterwards.
type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
	PrivateKey []byte // PEM-encoded RSA private key
	PublicKey  []byte // PEM-encoded RSA public key
	Leeway     time.Duration
	TimeFunc   func() time.Time
}

// Claims is the signed token payload. Scope is a space-joined set of role
// strings; in practice exactly one role per token.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Manager signs and parses tokens with one RSA key pair for the process
// lifetime. There is no key rotation and no multi-key support.
type Manager struct {
	config     Config
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewManager validates cfg and parses the key material. Malformed or missing
// keys are a construction-time failure, never a per-request one.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer must not be empty")
	}
	if cfg.TimeFunc == nil {
		cfg.TimeFunc = time.Now
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid rsa private key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid rsa public key: %w", err)
	}
	if !privateKey.PublicKey.Equal(publicKey) {
		return nil, errors.New("public key does not match private key")
	}

	return &Manager{
		config:     cfg,
		privateKey: privateKey,
		publicKey:  publicKey,
	}, nil
}

// CreateAccess signs an access token for subject with the given scope.
// It returns the compact token and its expiry as epoch seconds.
func (m *Manager) CreateAccess(subject, scope string) (string, int64, error) {
	return m.create(subject, scope, m.config.AccessTTL)
}

// CreateRefresh signs a refresh token for subject. The jti claim makes every
// issued refresh token a distinct high-entropy secret even within one clock
// second.
func (m *Manager) CreateRefresh(subject, scope string) (string, int64, error) {
	return m.create(subject, scope, m.config.RefreshTTL)
}

func (m *Manager) create(subject, scope string, ttl time.Duration) (string, int64, error) {
	if subject == "" {
		return "", 0, errors.New("subject must not be empty")
	}

	now := m.config.TimeFunc()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.config.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(m.privateKey)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt.Unix(), nil
}

// Parse validates the signature, issuer, and expiry of a compact token and
// returns its claims. Any failure is terminal: there is no partial trust.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.config.TimeFunc),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// PublicKey returns the verification key, e.g. for publishing to resource
// servers.
func (m *Manager) PublicKey() *rsa.PublicKey {
	return m.publicKey
}
