// Package authcore is a stateless, asymmetric-key bearer-token authentication
// core: it issues short-lived RS256 access tokens and longer-lived refresh
// tokens, verifies refresh tokens against a persisted one-way hash, rotates
// and revokes them, and maps authenticated requests to authorization scopes.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. Signing, parsing, and hashing are pure; the only shared
// mutable state is the per-account refresh-token hash behind [AccountStore].
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config],
// [Policy], and value types. The credential store is an external collaborator
// reached through [AccountStore]; accounts are created and destroyed outside
// this core, which only reads rows and writes the refresh-token hash column.
// An access token's validity is entirely determined by signature and expiry —
// it is never looked up server-side.
//
// # Token model
//
// Access and refresh tokens share one signing mechanism and claim shape
// ({iss, iat, exp, sub, scope}) but differ in scope and TTL: an access token
// carries exactly one privileged role scope, a refresh token carries exactly
// the REFRESH marker. The same verification layer validates both; the route
// [Policy] distinguishes them purely by scope.
package authcore
