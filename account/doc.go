// Package account defines the credential-store boundary of authcore: the
// account record, the closed role set with its derived role and scope strings,
// and the Store interface the engine uses to read accounts and persist the
// per-account refresh-token hash.
//
// Two adapters ship with the package: a Redis-backed store for server
// deployments and an in-memory store for tests and examples. Production
// systems that keep accounts in SQL only need to implement [Store].
package account
