package memory

import (
	"context"
	"testing"
)

func TestKeyValueStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore()

	if _, ok, err := store.Get(ctx, "userId"); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "userId", []byte("42")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	value, ok, err := store.Get(ctx, "userId")
	if err != nil || !ok {
		t.Fatalf("expected value, got ok=%v err=%v", ok, err)
	}
	if string(value) != "42" {
		t.Fatalf("unexpected value: %s", value)
	}

	if err := store.Delete(ctx, "userId"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "userId"); ok {
		t.Fatal("expected key to be deleted")
	}

	// Повторное удаление не ошибка.
	if err := store.Delete(ctx, "userId"); err != nil {
		t.Fatalf("repeated delete failed: %v", err)
	}
}

func TestKeyValueStore_CopySemantics(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore()

	value := []byte("original")
	if err := store.Set(ctx, "k", value); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value[0] = 'X'

	stored, _, _ := store.Get(ctx, "k")
	if string(stored) != "original" {
		t.Fatalf("store must keep its own copy, got %s", stored)
	}

	stored[0] = 'Y'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("reads must not alias stored bytes, got %s", again)
	}
}

func TestKeyValueStore_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore()

	_ = store.Set(ctx, "carrinhoProdutos_7", []byte(`[{"quantidade":1}]`))
	_ = store.Set(ctx, "carrinhoProdutos_7", []byte(`[]`))

	value, _, _ := store.Get(ctx, "carrinhoProdutos_7")
	if string(value) != "[]" {
		t.Fatalf("expected wholesale replacement, got %s", value)
	}
}
