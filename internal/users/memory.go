package users

import (
	"context"
	"sync"
)

// MemoryStore はテストおよびローカル開発用のインメモリ実装です。
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]User
	byName map[string]string
}

// NewMemoryStore は空の MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]User),
		byName: make(map[string]string),
	}
}

// FindByUsername はユーザー名でレコードを検索します。
func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.byID[id]
	return &user, nil
}

// FindByID は識別子でレコードを検索します。
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Add はレコードを登録します（既存の同一キーは上書き）。
func (s *MemoryStore) Add(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[user.ID] = user
	s.byName[user.Username] = user.ID
}

// Remove は識別子でレコードを削除します。
func (s *MemoryStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return
	}
	delete(s.byID, id)
	delete(s.byName, user.Username)
}
