// Package tokenhash provides the one-way, salted hashing scheme used to store
// refresh-token secrets at rest. It is deliberately a separate scheme from
// whatever hashes login passwords: the inputs here are high-entropy signed
// tokens, and the encoded format records its own cost parameters so they can
// be raised without invalidating stored hashes.
package tokenhash
