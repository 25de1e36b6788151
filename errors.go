package authcore

import (
	"errors"
	"fmt"

	"github.com/studyapp/authcore/account"
	"github.com/studyapp/authcore/catalog"
)

var (
	// ErrInvalidCredentials rejects a basic-auth login. The root cause is
	// never surfaced to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound is returned when an account lookup fails during
	// scope escalation or refresh verification. Treated as an
	// authentication rejection, not a server fault.
	ErrAccountNotFound = account.ErrNotFound
	// ErrTokenInvalid wraps signature or expiry failures from the
	// verification layer. Always fail-closed.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrRefreshMismatch is the business-level rejection for a presented
	// refresh token that does not match the stored hash (or none is
	// stored). Distinct from transport-level auth failure.
	ErrRefreshMismatch = errors.New("refresh token mismatch")
)

// Message keys carried by [BusinessError]. They are stable identifiers
// resolved through the catalog package for localized user-facing text.
const (
	MsgInvalidCredentials = "1.01.01.1001"
	MsgAccountNotFound    = "1.01.01.1009"
	MsgRefreshMismatch    = "1.01.01.1012"
)

// BusinessError is a typed rejection carrying a message key rather than free
// text, so boundary layers can localize without parsing error strings.
type BusinessError struct {
	MessageID string
	err       error
}

// NewBusinessError wraps err under the given message key.
func NewBusinessError(messageID string, err error) *BusinessError {
	return &BusinessError{MessageID: messageID, err: err}
}

func (e *BusinessError) Error() string {
	if e.err == nil {
		return e.MessageID
	}
	return fmt.Sprintf("%s: %v", e.MessageID, e.err)
}

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (e *BusinessError) Unwrap() error {
	return e.err
}

// LocalizedMessage resolves the message key in the active catalog language.
func (e *BusinessError) LocalizedMessage() string {
	return catalog.T(e.MessageID)
}
