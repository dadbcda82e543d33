// Package memory is a process-local store with the same whole-list
// replace semantics as the Postgres repository. Used by tests and by
// development runs without a database.
package memory

import (
	"context"
	"sync"

	"bmbat/go_backend/internal/domain/branding"
	"bmbat/go_backend/internal/domain/document"
)

type Store struct {
	mu       sync.Mutex
	docs     []document.Document
	brand    branding.Branding
	hasBrand bool
}

func New() *Store { return &Store{} }

func (s *Store) Load(ctx context.Context) ([]document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]document.Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	return out, nil
}

func (s *Store) SaveAll(ctx context.Context, docs []document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make([]document.Document, len(docs))
	for i, d := range docs {
		s.docs[i] = d.Clone()
	}
	return nil
}

func (s *Store) LoadBranding(ctx context.Context) (branding.Branding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasBrand {
		return branding.Default(), nil
	}
	return s.brand, nil
}

func (s *Store) SaveBranding(ctx context.Context, b branding.Branding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brand = b
	s.hasBrand = true
	return nil
}
