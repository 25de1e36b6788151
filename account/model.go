package account

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by [Store.FindOne] and
// [Store.UpdateRefreshTokenHash] when no account exists for the user id.
var ErrNotFound = errors.New("account not found")

// Type is the closed set of account roles. TypeRefresh is a token-scope-only
// marker: it participates in role/scope derivation but is never a storable
// account type.
type Type int

const (
	// TypeSystem is the system-administrator role.
	TypeSystem Type = iota
	// TypeAdmin is the administrator role.
	TypeAdmin
	// TypeUser is the general-user role.
	TypeUser
	// TypeRefresh is the refresh-token scope marker. Not storable.
	TypeRefresh
)

var typeInfo = [...]struct {
	code        string
	displayName string
	baseRole    string
}{
	TypeSystem:  {"01", "System Administrator", "SYSTEM"},
	TypeAdmin:   {"02", "Administrator", "ADMIN"},
	TypeUser:    {"03", "General User", "USER"},
	TypeRefresh: {"04", "Refresh", "REFRESH"},
}

func (t Type) valid() bool {
	return t >= TypeSystem && t <= TypeRefresh
}

// Code returns the two-digit persistence code of the type ("01".."04").
func (t Type) Code() string {
	if !t.valid() {
		return ""
	}
	return typeInfo[t].code
}

// DisplayName returns the human-readable name of the type.
func (t Type) DisplayName() string {
	if !t.valid() {
		return ""
	}
	return typeInfo[t].displayName
}

// BaseRole returns the bare role name (e.g. "ADMIN").
func (t Type) BaseRole() string {
	if !t.valid() {
		return ""
	}
	return typeInfo[t].baseRole
}

// Role returns the granted-role string embedded in token scope claims
// (e.g. "ROLE_ADMIN").
func (t Type) Role() string {
	if !t.valid() {
		return ""
	}
	return "ROLE_" + typeInfo[t].baseRole
}

// TokenScope returns the authority form a verified bearer token carries
// (e.g. "SCOPE_ROLE_ADMIN").
func (t Type) TokenScope() string {
	if !t.valid() {
		return ""
	}
	return "SCOPE_" + t.Role()
}

// Storable reports whether the type may appear on a persisted account row.
func (t Type) Storable() bool {
	return t.valid() && t != TypeRefresh
}

func (t Type) String() string {
	if !t.valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeInfo[t].baseRole
}

// TypeOfCode resolves a persistence code back to its [Type].
func TypeOfCode(code string) (Type, error) {
	for t := TypeSystem; t <= TypeRefresh; t++ {
		if typeInfo[t].code == code {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown account type code %q", code)
}

// TypeOfRole resolves a granted-role string (e.g. "ROLE_ADMIN") back to its
// [Type].
func TypeOfRole(role string) (Type, error) {
	for t := TypeSystem; t <= TypeRefresh; t++ {
		if "ROLE_"+typeInfo[t].baseRole == role {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", role)
}

// Record is a single account row as seen through the credential-store
// boundary. UserID is the immutable key. RefreshTokenHash holds the one-way
// hash of the currently valid refresh token; the empty string means no active
// refresh token. The hash is mutated exclusively by the engine: set on
// issuance, cleared on revoke, overwritten on re-issuance.
type Record struct {
	UserID           string
	PasswordHash     string
	DisplayName      string
	Type             Type
	RefreshTokenHash string
}
