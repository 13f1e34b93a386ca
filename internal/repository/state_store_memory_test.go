package repository

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	if got, err := store.Get(ctx, "k"); err != nil || got != nil {
		t.Fatalf("Get missing = %q, %v; want nil, nil", got, err)
	}

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := store.Exists(ctx, "k"); ok {
		t.Errorf("key still exists after delete")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	if err := store.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if got, _ := store.Get(ctx, "k"); got != nil {
		t.Errorf("expired entry still readable: %q", got)
	}
	if ok, _ := store.Exists(ctx, "k"); ok {
		t.Errorf("expired entry still reported as existing")
	}
}

func TestMemoryStoreCopiesValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	val := []byte("original")
	if err := store.Set(ctx, "k", val, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val[0] = 'X'

	got, _ := store.Get(ctx, "k")
	if !bytes.Equal(got, []byte("original")) {
		t.Errorf("stored value aliased the caller's slice: %q", got)
	}
}
