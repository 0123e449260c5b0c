package pgvec

import (
	"context"
	"testing"
	"time"
)

func TestNewStoreDefaultTimeout(t *testing.T) {
	store := NewStore(nil, "documents", 0)
	if store.timeout != 15*time.Second {
		t.Errorf("timeout = %v, want 15s default", store.timeout)
	}

	store = NewStore(nil, "documents", 3*time.Second)
	if store.timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", store.timeout)
	}
}

func TestBoundedContextAddsDeadline(t *testing.T) {
	store := NewStore(nil, "documents", 2*time.Second)

	// Chat turns arrive without a deadline; the store must impose one.
	ctx, cancel := store.boundedContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("bounded context has no deadline")
	}
	if remaining := time.Until(deadline); remaining > 2*time.Second {
		t.Errorf("deadline %v exceeds configured timeout", remaining)
	}
}

func TestEnsureCollectionRejectsInvalidDimension(t *testing.T) {
	store := NewStore(nil, "documents", time.Second)
	if err := store.EnsureCollection(context.Background(), 0); err == nil {
		t.Error("EnsureCollection must reject a non-positive dimension")
	}
}

func TestTableNamePerCollection(t *testing.T) {
	store := NewStore(nil, "documents", time.Second)
	if got := store.tableName(); got != "vectors_documents" {
		t.Errorf("tableName() = %q, want %q", got, "vectors_documents")
	}
}
