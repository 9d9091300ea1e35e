package settings

import (
	"context"
	"testing"
	"time"

	"github.com/vitrineshop/vitrine-backend/pkg/redis"
)

type fakeCache struct {
	values map[string]string
	fail   bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.fail {
		return "", context.DeadlineExceeded
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeCache) SettingsKey() string {
	return "vitrine:settings:store"
}

func TestStoreSettingsRowsRoundTrip(t *testing.T) {
	original := StoreSettings{
		StoreName:      "Vitrine Demo",
		ContactEmail:   "hello@vitrine.test",
		WhatsappNumber: "5511999990000",
	}

	restored := fromRows(original.toRows())
	if restored != original {
		t.Fatalf("expected %+v, got %+v", original, restored)
	}
}

func TestFromRowsIgnoresUnknownKeys(t *testing.T) {
	restored := fromRows(map[string]string{
		"store_name": "Vitrine Demo",
		"legacy_key": "ignored",
	})
	if restored.StoreName != "Vitrine Demo" {
		t.Fatalf("expected store name, got %+v", restored)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	svc := &service{cache: cache, cacheTTL: time.Minute}

	if _, ok := svc.readCache(ctx); ok {
		t.Fatal("expected cache miss on empty cache")
	}

	want := StoreSettings{StoreName: "Vitrine Demo"}
	svc.writeCache(ctx, want)

	got, ok := svc.readCache(ctx)
	if !ok {
		t.Fatal("expected cache hit after write")
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	svc.dropCache(ctx)
	if _, ok := svc.readCache(ctx); ok {
		t.Fatal("expected cache miss after invalidation")
	}
}

func TestCacheCorruptEntryDropped(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.values[cache.SettingsKey()] = "{not json"
	svc := &service{cache: cache}

	if _, ok := svc.readCache(ctx); ok {
		t.Fatal("expected corrupt cache entry to miss")
	}
	if _, stillThere := cache.values[cache.SettingsKey()]; stillThere {
		t.Fatal("expected corrupt cache entry to be dropped")
	}
}

func TestCacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.fail = true
	svc := &service{cache: cache}

	if _, ok := svc.readCache(ctx); ok {
		t.Fatal("expected cache errors to read as miss")
	}
}
