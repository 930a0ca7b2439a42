package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"mindline/internal/models"
)

type stubStore struct {
	rules []models.KeywordRule
	err   error
	calls int
}

func (s *stubStore) ListActiveRules(ctx context.Context, institutionID uuid.UUID) ([]models.KeywordRule, error) {
	s.calls++
	return s.rules, s.err
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memCache) Set(key string, val []byte, exp time.Duration) error {
	m.data[key] = val
	return nil
}

func (m *memCache) Delete(key string) error {
	delete(m.data, key)
	return nil
}

type failingCache struct{}

func (failingCache) Get(key string) ([]byte, error)                      { return nil, errors.New("cache down") }
func (failingCache) Set(key string, val []byte, exp time.Duration) error { return errors.New("cache down") }
func (failingCache) Delete(key string) error                             { return errors.New("cache down") }

func testRules() []models.KeywordRule {
	return []models.KeywordRule{
		{ID: uuid.New(), Phrase: "estresado", Category: models.SymptomStress, Weight: 3, Active: true},
	}
}

func TestCatalog_CacheMissThenHit(t *testing.T) {
	store := &stubStore{rules: testRules()}
	cat := New(store, newMemCache(), time.Minute, nil)
	scope := uuid.New()

	first, err := cat.ActiveRules(context.Background(), scope)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if len(first) != 1 || store.calls != 1 {
		t.Fatalf("expected one rule from store, got %d rules / %d calls", len(first), store.calls)
	}

	second, err := cat.ActiveRules(context.Background(), scope)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("second fetch should hit the cache, store calls = %d", store.calls)
	}
	if len(second) != 1 || second[0].Phrase != "estresado" {
		t.Errorf("cached rules do not round-trip: %+v", second)
	}
}

func TestCatalog_InvalidateForcesRefetch(t *testing.T) {
	store := &stubStore{rules: testRules()}
	cat := New(store, newMemCache(), time.Minute, nil)
	scope := uuid.New()

	if _, err := cat.ActiveRules(context.Background(), scope); err != nil {
		t.Fatal(err)
	}
	cat.Invalidate(scope)
	if _, err := cat.ActiveRules(context.Background(), scope); err != nil {
		t.Fatal(err)
	}

	if store.calls != 2 {
		t.Errorf("invalidation should force a store fetch, calls = %d", store.calls)
	}
}

func TestCatalog_ScopesAreIsolated(t *testing.T) {
	store := &stubStore{rules: testRules()}
	cat := New(store, newMemCache(), time.Minute, nil)

	if _, err := cat.ActiveRules(context.Background(), uuid.New()); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.ActiveRules(context.Background(), uuid.New()); err != nil {
		t.Fatal(err)
	}

	if store.calls != 2 {
		t.Errorf("different institutions must not share cache entries, calls = %d", store.calls)
	}
}

func TestCatalog_NilCachePassthrough(t *testing.T) {
	store := &stubStore{rules: testRules()}
	cat := New(store, nil, time.Minute, nil)
	scope := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := cat.ActiveRules(context.Background(), scope); err != nil {
			t.Fatal(err)
		}
	}
	if store.calls != 3 {
		t.Errorf("nil cache should pass every call through, calls = %d", store.calls)
	}
}

func TestCatalog_CacheFailureFallsThrough(t *testing.T) {
	store := &stubStore{rules: testRules()}
	cat := New(store, failingCache{}, time.Minute, nil)

	rules, err := cat.ActiveRules(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("cache failure must not fail the catalog: %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("expected rules from store despite cache failure, got %d", len(rules))
	}
}

func TestCatalog_StoreErrorPropagates(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	cat := New(store, newMemCache(), time.Minute, nil)

	if _, err := cat.ActiveRules(context.Background(), uuid.New()); err == nil {
		t.Error("store error should propagate when nothing is cached")
	}
}
