package authcore

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/studyapp/authcore/account"
	internalaudit "github.com/studyapp/authcore/internal/audit"
	"github.com/studyapp/authcore/jwt"
	"github.com/studyapp/authcore/tokenhash"
)

// Builder assembles an [Engine]. Construction is allocation-only; no I/O
// happens until engine methods run.
type Builder struct {
	config    Config
	store     account.Store
	policy    *Policy
	auditSink AuditSink
	logger    *zap.Logger
	timeFunc  func() time.Time

	built bool
}

// New returns a Builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithAccountStore sets the credential-store collaborator. Required.
func (b *Builder) WithAccountStore(store account.Store) *Builder {
	b.store = store
	return b
}

// WithPolicy replaces the route authorization table. Defaults to
// [DefaultPolicy].
func (b *Builder) WithPolicy(p *Policy) *Builder {
	b.policy = p
	return b
}

// WithAuditSink sets the audit event sink. Defaults to discarding.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithTimeFunc injects the clock used for claim timestamps and expiry
// validation. Intended for deterministic tests.
func (b *Builder) WithTimeFunc(now func() time.Time) *Builder {
	b.timeFunc = now
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and constructs the engine. Malformed or
// missing key material fails here, at startup, never per request.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.store == nil {
		return nil, errors.New("account store is required")
	}
	if err := b.config.validate(); err != nil {
		return nil, err
	}

	timeFunc := b.timeFunc
	if timeFunc == nil {
		timeFunc = time.Now
	}

	tokens, err := jwt.NewManager(jwt.Config{
		AccessTTL:  b.config.JWT.AccessTTL,
		RefreshTTL: b.config.JWT.RefreshTTL,
		Issuer:     b.config.JWT.Issuer,
		PrivateKey: b.config.JWT.PrivateKey,
		PublicKey:  b.config.JWT.PublicKey,
		Leeway:     b.config.JWT.Leeway,
		TimeFunc:   timeFunc,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := tokenhash.NewPBKDF2(tokenhash.Config{
		Iterations: b.config.TokenHash.Iterations,
		SaltLength: b.config.TokenHash.SaltLength,
		KeyLength:  b.config.TokenHash.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	policy := b.policy
	if policy == nil {
		policy = DefaultPolicy()
	}

	b.built = true

	return &Engine{
		tokens:  tokens,
		hasher:  hasher,
		store:   b.store,
		policy:  policy,
		logger:  logger,
		metrics: NewMetrics(b.config.Metrics),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    b.config.Audit.Enabled,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.auditSink),
		now: timeFunc,
	}, nil
}
