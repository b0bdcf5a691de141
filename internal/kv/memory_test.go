package kv

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := store.Load(ctx, "chave"); err != nil || ok {
		t.Fatalf("chave inexistente: esperava ausência, obteve ok=%v err=%v", ok, err)
	}

	if err := store.Save(ctx, "chave", "valor"); err != nil {
		t.Fatal(err)
	}
	val, ok, err := store.Load(ctx, "chave")
	if err != nil || !ok || val != "valor" {
		t.Fatalf("esperava valor, obteve %q ok=%v err=%v", val, ok, err)
	}

	// Save sobrescreve.
	if err := store.Save(ctx, "chave", "outro"); err != nil {
		t.Fatal(err)
	}
	val, _, _ = store.Load(ctx, "chave")
	if val != "outro" {
		t.Errorf("esperava sobrescrita, obteve %q", val)
	}

	if err := store.Remove(ctx, "chave"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Load(ctx, "chave"); ok {
		t.Error("chave deveria ter sido removida")
	}

	// Remover chave ausente não é erro.
	if err := store.Remove(ctx, "chave"); err != nil {
		t.Errorf("remover ausente: %v", err)
	}
}

func TestMemoryStoreConcorrente(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Save(ctx, "compartilhada", "v")
				_, _, _ = store.Load(ctx, "compartilhada")
			}
		}()
	}
	wg.Wait()
}
