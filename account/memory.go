package account

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory [Store] for tests and examples.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]Record)}
}

// FindOne returns a copy of the stored row, or [ErrNotFound].
func (s *MemoryStore) FindOne(_ context.Context, userID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.accounts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// UpdateRefreshTokenHash overwrites the stored hash, or returns
// [ErrNotFound] when the account does not exist.
func (s *MemoryStore) UpdateRefreshTokenHash(_ context.Context, userID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[userID]
	if !ok {
		return ErrNotFound
	}
	rec.RefreshTokenHash = hash
	s.accounts[userID] = rec
	return nil
}

// Put seeds an account row.
func (s *MemoryStore) Put(rec Record) error {
	if !rec.Type.Storable() {
		return fmt.Errorf("account type %s is not storable", rec.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[rec.UserID] = rec
	return nil
}
