package kvstore

import (
	"context"
	"testing"
)

func TestMemoryGetMissingKey(t *testing.T) {
	m := NewMemory()

	v, found, err := m.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false, got value %q", v)
	}
}

func TestMemorySetGetDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := m.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, found, err := m.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("get failed: found=%v err=%v", found, err)
	}
	if v != "v2" {
		t.Fatalf("expected v2, got %q", v)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found, _ := m.Get(ctx, "k"); found {
		t.Fatalf("expected key gone after delete")
	}

	// Deleting again is not an error.
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("double delete failed: %v", err)
	}
}
