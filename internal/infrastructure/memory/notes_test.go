package memory

import (
	"context"
	"testing"
)

func TestNoteStore_SetAndConsume(t *testing.T) {
	store := NewNoteStore()
	ctx := context.Background()

	if err := store.Set(ctx, "sess-1", "login-token"); err != nil {
		t.Fatalf("set: %v", err)
	}

	note, err := store.Consume(ctx, "sess-1")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if note != "login-token" {
		t.Fatalf("unexpected note: %q", note)
	}
}

func TestNoteStore_ConsumeIsSingleUse(t *testing.T) {
	store := NewNoteStore()
	ctx := context.Background()

	if err := store.Set(ctx, "sess-1", "login-token"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := store.Consume(ctx, "sess-1"); err != nil {
		t.Fatalf("first consume: %v", err)
	}

	note, err := store.Consume(ctx, "sess-1")
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if note != "" {
		t.Fatalf("note must be gone after first consume, got %q", note)
	}
}

func TestNoteStore_MissingSession(t *testing.T) {
	store := NewNoteStore()

	note, err := store.Consume(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if note != "" {
		t.Fatalf("expected empty note, got %q", note)
	}
}

func TestNoteStore_SetReplacesPrevious(t *testing.T) {
	store := NewNoteStore()
	ctx := context.Background()

	if err := store.Set(ctx, "sess-1", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "sess-1", "second"); err != nil {
		t.Fatalf("set: %v", err)
	}

	note, err := store.Consume(ctx, "sess-1")
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if note != "second" {
		t.Fatalf("expected latest note, got %q", note)
	}
}
