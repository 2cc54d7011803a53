package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testMemory(now *time.Time) *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		now:     func() time.Time { return *now },
	}
	return m
}

func TestMemorySetGetExpiry(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	m := testMemory(&now)
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	if value, ok := m.Get(ctx, "k"); !ok || string(value) != "v" {
		t.Fatalf("expected hit with v, got %q ok=%v", value, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestMemoryRemove(t *testing.T) {
	now := time.Now()
	m := testMemory(&now)
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	m.Remove(ctx, "k")
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected miss after remove")
	}
}

func TestMemoryGetOrCreate(t *testing.T) {
	now := time.Now()
	m := testMemory(&now)
	ctx := context.Background()

	calls := 0
	factory := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte("built"), nil
	}

	for i := 0; i < 3; i++ {
		value, err := m.GetOrCreate(ctx, "k", time.Minute, factory)
		if err != nil {
			t.Fatalf("GetOrCreate: %v", err)
		}
		if string(value) != "built" {
			t.Fatalf("unexpected value %q", value)
		}
	}
	if calls != 1 {
		t.Fatalf("expected factory called once, got %d", calls)
	}
}

func TestMemoryGetOrCreateDoesNotCacheErrors(t *testing.T) {
	now := time.Now()
	m := testMemory(&now)
	ctx := context.Background()

	boom := errors.New("boom")
	if _, err := m.GetOrCreate(ctx, "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	value, err := m.GetOrCreate(ctx, "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("ok"), nil
	})
	if err != nil || string(value) != "ok" {
		t.Fatalf("expected retry to succeed, got %q err=%v", value, err)
	}
}

func TestProfileKeyNormalizesUsername(t *testing.T) {
	if ProfileKey(" Alice ") != "profile:alice" {
		t.Fatalf("unexpected key %q", ProfileKey(" Alice "))
	}
}
