package storage

import (
	"context"
	"sync"

	"github.com/sandeepkv93/today/internal/model"
)

// MemoryStore is an in-process Store. Load hands out independent copies.
type MemoryStore struct {
	mu    sync.Mutex
	tasks []model.Task
	saves int
}

func NewMemoryStore(initial ...model.Task) *MemoryStore {
	return &MemoryStore{tasks: cloneTasks(initial)}
}

func (s *MemoryStore) Load(context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks), nil
}

func (s *MemoryStore) Save(_ context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneTasks(tasks)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
