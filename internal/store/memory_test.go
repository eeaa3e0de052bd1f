package store

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type testDoc struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func TestMemoryGetMissing(t *testing.T) {
	s := NewMemory()
	var out testDoc
	err := s.Get(context.Background(), "users", "nobody@example.com", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryPutGetRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	in := testDoc{Name: "Alice", Status: "pending", Count: 3}
	if err := s.Put(ctx, "users", "alice@example.com", in); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out testDoc
	if err := s.Get(ctx, "users", "alice@example.com", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestMemoryUpdateMergesFields(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, "users", "alice@example.com", testDoc{Name: "Alice", Status: "pending"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Update(ctx, "users", "alice@example.com", Fields{"status": "active"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var out testDoc
	if err := s.Get(ctx, "users", "alice@example.com", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Status != "active" {
		t.Errorf("status = %q, want %q", out.Status, "active")
	}
	if out.Name != "Alice" {
		t.Errorf("untouched field changed: name = %q", out.Name)
	}
}

func TestMemoryUpdateMissing(t *testing.T) {
	s := NewMemory()
	err := s.Update(context.Background(), "users", "nobody@example.com", Fields{"status": "active"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCollectionsAreIsolated(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, "users", "alice@example.com", testDoc{Name: "Alice"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out testDoc
	err := s.Get(ctx, "applications", "alice@example.com", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across collections, got %v", err)
	}
}

func TestMemoryConcurrentGetAndUpdate(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	if err := s.Put(ctx, "users", "alice@example.com", testDoc{Name: "Alice", Status: "pending"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			var out testDoc
			if err := s.Get(ctx, "users", "alice@example.com", &out); err != nil {
				t.Errorf("get: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if err := s.Update(ctx, "users", "alice@example.com", Fields{"count": i}); err != nil {
				t.Errorf("update: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	var out testDoc
	if err := s.Get(ctx, "users", "alice@example.com", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Count != 499 {
		t.Errorf("count = %d, want 499", out.Count)
	}
	if out.Name != "Alice" {
		t.Errorf("untouched field changed: name = %q", out.Name)
	}
}
