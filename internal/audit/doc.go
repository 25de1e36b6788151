// Package audit implements async event dispatching for token-lifecycle
// operations: issuance, refresh verification, mismatches, and revocation.
package audit
