package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryViewCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryViewCache(15 * time.Second).(*memoryViewCache)
	c.now = func() time.Time { return now }

	if _, err := c.Get(ctx, 1); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() on empty cache error = %v, want ErrMiss", err)
	}

	if err := c.Set(ctx, 1, 0, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := c.Get(ctx, 1)
	if err != nil || string(got) != `{"ok":true}` {
		t.Fatalf("Get() = %s, %v", got, err)
	}

	now = now.Add(15 * time.Second)
	if _, err := c.Get(ctx, 1); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() after ttl error = %v, want ErrMiss", err)
	}

	c.Set(ctx, 2, 0, []byte(`x`))
	c.Invalidate(ctx, 2)
	if _, err := c.Get(ctx, 2); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() after Invalidate error = %v, want ErrMiss", err)
	}
}

func TestMemoryViewCacheRejectsStaleSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryViewCache(time.Minute)

	gen, err := c.Generation(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	// A mutation lands while the view is being built.
	if err := c.Invalidate(ctx, 4); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, 4, gen, []byte(`old`)); !errors.Is(err, ErrStale) {
		t.Fatalf("Set() with old generation error = %v, want ErrStale", err)
	}
	if _, err := c.Get(ctx, 4); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() after stale Set error = %v, want ErrMiss", err)
	}

	gen, _ = c.Generation(ctx, 4)
	if err := c.Set(ctx, 4, gen, []byte(`new`)); err != nil {
		t.Fatalf("Set() with current generation error = %v", err)
	}
	if got, err := c.Get(ctx, 4); err != nil || string(got) != "new" {
		t.Fatalf("Get() = %s, %v", got, err)
	}
}
