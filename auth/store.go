package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// ErrNoToken is returned by a TokenStore that holds nothing for a key.
var ErrNoToken = errors.New("no token stored")

// Record is what a login leaves behind: the bearer token and its user.
type Record struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// TokenStore keeps login records by session key.
type TokenStore interface {
	Get(ctx context.Context, key string) (*Record, error)
	Set(ctx context.Context, key string, rec *Record) error
	Delete(ctx context.Context, key string) error
}

// MemoryTokenStore is a process-local TokenStore.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{records: make(map[string]Record)}
}

func (s *MemoryTokenStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, ErrNoToken
	}
	return &rec, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, key string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = *rec
	return nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
