package authcore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studyapp/authcore/account"
	internalaudit "github.com/studyapp/authcore/internal/audit"
	"github.com/studyapp/authcore/jwt"
	"github.com/studyapp/authcore/tokenhash"
)

// Engine orchestrates token issuance, refresh-token lifecycle, and
// verification. All methods are safe for unlimited concurrent use after
// [Builder.Build]: the only shared mutable state is the per-account
// refresh-token hash behind [AccountStore].
//
// Single active refresh token policy: issuing a refresh token overwrites the
// previously stored hash, so concurrent issuance for the same account races
// last-write-wins — the loser's token is immediately invalid. There is a
// narrow window between a successful verify and a concurrent issue/revoke for
// the same account; this is accepted behavior, not guarded by locking.
type Engine struct {
	tokens  *jwt.Manager
	hasher  *tokenhash.PBKDF2
	store   account.Store
	policy  *Policy
	logger  *zap.Logger
	metrics *Metrics
	audit   *internalaudit.Dispatcher
	now     func() time.Time
}

// Policy returns the route authorization table the engine was built with.
func (e *Engine) Policy() *Policy {
	return e.policy
}

// MetricsSnapshot returns a copy of the engine's counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped reports audit events discarded under backpressure.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}

// Close drains and stops the audit dispatcher.
func (e *Engine) Close() {
	e.audit.Close()
}

func (e *Engine) emit(ctx context.Context, eventType string, p Principal, scope string, err error) {
	event := internalaudit.Event{
		Timestamp: e.now(),
		EventType: eventType,
		Subject:   p.Name,
		Scope:     scope,
		Success:   err == nil,
	}
	if err != nil {
		event.Error = err.Error()
	}
	e.audit.Emit(ctx, event)
}

// GenerateToken issues a signed access token for the principal.
//
// Scope escalation: when the principal's current scope carries the REFRESH
// marker — the request was authenticated by a refresh token — the REFRESH
// marker must never be embedded in the new access token. The account's real
// type is looked up instead and its granted role becomes the token scope. An
// absent account is a hard [ErrAccountNotFound] failure: a successfully
// authenticated refresh token always escalates to a real privilege level or
// fails closed.
func (e *Engine) GenerateToken(ctx context.Context, p Principal) (*Token, error) {
	scope, err := e.resolveScope(ctx, p)
	if err != nil {
		e.metrics.Inc(MetricTokenIssueFailure)
		e.emit(ctx, internalaudit.EventEscalationFailed, p, p.Scope, err)
		return nil, err
	}

	value, expiresAt, err := e.tokens.CreateAccess(p.Name, scope)
	if err != nil {
		e.metrics.Inc(MetricTokenIssueFailure)
		e.emit(ctx, internalaudit.EventTokenIssued, p, scope, err)
		return nil, err
	}

	e.metrics.Inc(MetricTokenIssued)
	e.emit(ctx, internalaudit.EventTokenIssued, p, scope, nil)
	e.logger.Debug("access token granted",
		zap.String("user", p.Name),
		zap.String("scope", scope),
		zap.Int64("expires_at", expiresAt),
	)

	return &Token{
		Value:     value,
		ExpiresAt: expiresAt,
		Subject:   p.Name,
		Scope:     scope,
	}, nil
}

// resolveScope applies the scope-escalation rule. A non-refresh scope passes
// through unchanged.
func (e *Engine) resolveScope(ctx context.Context, p Principal) (string, error) {
	if !scopeHasRefreshMarker(p.Scope) {
		return p.Scope, nil
	}

	rec, err := e.store.FindOne(ctx, p.Name)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			e.metrics.Inc(MetricEscalationFailure)
			return "", fmt.Errorf("scope escalation for %q: %w", p.Name, ErrAccountNotFound)
		}
		return "", err
	}

	return rec.Type.Role(), nil
}

func scopeHasRefreshMarker(scope string) bool {
	refresh := account.TypeRefresh
	for _, field := range strings.Fields(scope) {
		if field == refresh.Role() || field == refresh.TokenScope() || field == refresh.BaseRole() {
			return true
		}
	}
	return false
}

// GenerateRefreshToken signs a fresh refresh token for the principal, hashes
// the signed value, and persists the hash keyed by the principal name,
// unconditionally overwriting any prior hash. The raw token is returned to
// hand to the caller; only its one-way hash is ever stored.
func (e *Engine) GenerateRefreshToken(ctx context.Context, p Principal) (string, error) {
	raw, _, err := e.tokens.CreateRefresh(p.Name, account.TypeRefresh.Role())
	if err != nil {
		e.emit(ctx, internalaudit.EventRefreshIssued, p, account.TypeRefresh.Role(), err)
		return "", err
	}

	hash, err := e.hasher.Hash(raw)
	if err != nil {
		e.emit(ctx, internalaudit.EventRefreshIssued, p, account.TypeRefresh.Role(), err)
		return "", err
	}

	if err := e.store.UpdateRefreshTokenHash(ctx, p.Name, hash); err != nil {
		e.emit(ctx, internalaudit.EventRefreshIssued, p, account.TypeRefresh.Role(), err)
		return "", err
	}

	e.metrics.Inc(MetricRefreshIssued)
	e.emit(ctx, internalaudit.EventRefreshIssued, p, account.TypeRefresh.Role(), nil)
	e.logger.Debug("refresh token granted", zap.String("user", p.Name))

	return raw, nil
}

// IssueTokenPair issues an access token and a refresh token for a
// credential-authenticated principal. This is the login path; the refresh
// path goes through [Engine.Refresh].
func (e *Engine) IssueTokenPair(ctx context.Context, p Principal) (*TokenPair, error) {
	access, err := e.GenerateToken(ctx, p)
	if err != nil {
		return nil, err
	}

	refresh, err := e.GenerateRefreshToken(ctx, p)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: *access, RefreshToken: refresh}, nil
}

// VerifyRefreshToken reports whether raw is the currently issued refresh
// secret for userID. Expiry is not rechecked here: signature verification
// already enforced it before this call is reached. An absent account or an
// empty stored hash never matches.
func (e *Engine) VerifyRefreshToken(ctx context.Context, raw, userID string) (bool, error) {
	rec, err := e.store.FindOne(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return e.hasher.Matches(raw, rec.RefreshTokenHash), nil
}

// Refresh verifies the presented refresh token against the stored hash and,
// on success, issues a new scope-escalated access token. The refresh token
// itself is not renewed: the pair echoes the presented token back.
//
// A mismatch returns a [*BusinessError] with message key [MsgRefreshMismatch]
// wrapping [ErrRefreshMismatch].
func (e *Engine) Refresh(ctx context.Context, rawRefreshToken string, p Principal) (*TokenPair, error) {
	ok, err := e.VerifyRefreshToken(ctx, rawRefreshToken, p.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.metrics.Inc(MetricRefreshMismatch)
		e.emit(ctx, internalaudit.EventRefreshMismatch, p, p.Scope, ErrRefreshMismatch)
		return nil, NewBusinessError(MsgRefreshMismatch, ErrRefreshMismatch)
	}

	e.metrics.Inc(MetricRefreshSuccess)
	e.emit(ctx, internalaudit.EventRefreshVerified, p, p.Scope, nil)
	e.logger.Debug("refresh token verified", zap.String("user", p.Name))

	access, err := e.GenerateToken(ctx, p)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: *access, RefreshToken: rawRefreshToken}, nil
}

// Revoke clears the stored refresh-token hash for userID, invalidating the
// active refresh token. Revoking an account with no active token is a no-op
// success; the transition to "absent" is unconditional and idempotent.
func (e *Engine) Revoke(ctx context.Context, userID string) error {
	if err := e.store.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		e.emit(ctx, internalaudit.EventRefreshRevoked, Principal{Name: userID}, "", err)
		return err
	}

	e.metrics.Inc(MetricRevoke)
	e.emit(ctx, internalaudit.EventRefreshRevoked, Principal{Name: userID}, "", nil)
	e.logger.Debug("refresh token revoked", zap.String("user", userID))

	return nil
}

// Validate parses and verifies a presented bearer token and exposes its
// claims to the authorization layer. Any signature or expiry failure wraps
// [ErrTokenInvalid].
func (e *Engine) Validate(tokenStr string) (*AuthResult, error) {
	claims, err := e.tokens.Parse(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	scopes := strings.Fields(claims.Scope)
	authorities := make([]string, 0, len(scopes))
	for _, s := range scopes {
		authorities = append(authorities, "SCOPE_"+s)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &AuthResult{
		UserID:      claims.Subject,
		Scope:       claims.Scope,
		Authorities: authorities,
		ExpiresAt:   expiresAt,
		Token:       tokenStr,
	}, nil
}
