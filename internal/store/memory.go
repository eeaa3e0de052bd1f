package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process store used for local development and tests.
// Documents round-trip through JSON so field names and value types behave
// exactly as they do against the real backends.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string]any)}
}

func (s *Memory) Get(ctx context.Context, collection, key string, out any) error {
	// Marshal under the read lock: Update mutates the stored map in place.
	s.mu.RLock()
	doc, ok := s.docs[collection+":"+key]
	if !ok {
		s.mu.RUnlock()
		return ErrNotFound
	}
	data, err := json.Marshal(doc)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	return json.Unmarshal(data, out)
}

func (s *Memory) Put(ctx context.Context, collection, key string, doc any) error {
	normalized, err := normalize(doc)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, key, err)
	}
	s.mu.Lock()
	s.docs[collection+":"+key] = normalized
	s.mu.Unlock()
	return nil
}

func (s *Memory) Update(ctx context.Context, collection, key string, fields Fields) error {
	normalized, err := normalize(fields)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[collection+":"+key]
	if !ok {
		return ErrNotFound
	}
	for name, value := range normalized {
		doc[name] = value
	}
	return nil
}

func (s *Memory) Close() error { return nil }

func normalize(doc any) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
