package authcore

import (
	"io"
	"time"

	"github.com/studyapp/authcore/account"
	internalaudit "github.com/studyapp/authcore/internal/audit"
)

// Principal is an authenticated caller: the user identifier plus the
// space-joined role scope the current authentication carries. A
// basic-credential login carries the account's granted role; a refresh-token
// authentication carries the REFRESH marker role.
type Principal struct {
	Name  string
	Scope string
}

// Token is a signed access token together with the claim values a boundary
// layer typically echoes back to the client.
type Token struct {
	Value     string
	ExpiresAt int64
	Subject   string
	Scope     string
}

// TokenPair is the result of a credential login: a fresh access token plus
// the raw refresh token whose hash has been persisted.
type TokenPair struct {
	Access       Token
	RefreshToken string
}

// AuthResult is returned by [Engine.Validate]. Authorities holds the
// SCOPE_-prefixed forms of every role in the scope claim, which is what the
// route policy evaluates for bearer-authenticated requests.
type AuthResult struct {
	UserID      string
	Scope       string
	Authorities []string
	ExpiresAt   time.Time
	Token       string
}

// Account is the credential-store row, re-exported from the account package.
type Account = account.Record

// AccountType is the closed role set {SYSTEM, ADMIN, USER, REFRESH}.
type AccountType = account.Type

// AccountStore is the credential-store collaborator boundary.
type AccountStore = account.Store

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
