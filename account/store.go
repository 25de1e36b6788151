package account

import "context"

// Store is the credential-store collaborator boundary. Implementations hold
// account rows; the engine only ever reads a row by user id and writes the
// refresh-token hash column.
//
// FindOne returns [ErrNotFound] when no account exists for userID.
// UpdateRefreshTokenHash overwrites the stored hash unconditionally; an empty
// hash means "no active refresh token". Both calls are single-row operations:
// no cross-account locking is required, and concurrent writers for the same
// account resolve last-write-wins.
type Store interface {
	FindOne(ctx context.Context, userID string) (*Record, error)
	UpdateRefreshTokenHash(ctx context.Context, userID, hash string) error
}
