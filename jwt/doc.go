// Package jwt signs and verifies the RS256 bearer tokens issued by authcore.
//
// A single [Manager] holds the process-wide RSA key pair and both TTLs. Access
// and refresh tokens share one claim shape ({iss, iat, exp, sub, scope, jti})
// and one verification path; they differ only in TTL and in the scope value
// the engine passes in. All Manager methods are pure and safe for unlimited
// concurrent use.
package jwt
