package database

import (
	"context"
	"sort"
	"sync"

	"github.com/nokokiii/API-Engineering-Exam/internal/models"
)

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[int64]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[int64]models.User)}
}

func (s *MemoryUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryUserStore) Create(_ context.Context, name, lastname string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next int64 = 1
	for id := range s.users {
		if id >= next {
			next = id + 1
		}
	}
	u := models.User{ID: next, Name: name, Lastname: lastname}
	s.users[u.ID] = u
	return &u, nil
}

func (s *MemoryUserStore) Upsert(_ context.Context, u *models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.users[u.ID]
	s.users[u.ID] = *u
	return !exists, nil
}

func (s *MemoryUserStore) Update(_ context.Context, id int64, p models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	p.Apply(&u)
	s.users[id] = u
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *MemoryUserStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *MemoryUserStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[int64]models.User)
	return nil
}

func (s *MemoryUserStore) Close() error { return nil }
