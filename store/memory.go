package store

import (
	"context"
	"sync"

	"civiclens/models"
)

// MemoryStore keeps issues in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	issues []models.Issue
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, issue models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issues = append(s.issues, issue.Clone())
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		out = append(out, issue.Clone())
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.issues[i].Clone(), nil
	}
	return models.Issue{}, ErrIssueNotFound
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrIssueNotFound
	}
	s.issues[i].Status = status
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrIssueNotFound
	}
	s.issues = append(s.issues[:i], s.issues[i+1:]...)
	return nil
}

func (s *MemoryStore) indexOf(id string) int {
	for i, issue := range s.issues {
		if issue.ID == id {
			return i
		}
	}
	return -1
}
