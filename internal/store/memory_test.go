package store

import (
	"context"
	"errors"
	"testing"
)

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var last int64
	for i := 0; i < 10; i++ {
		msg, err := s.CreateMessage(ctx, "u1", "u2", "hi")
		if err != nil {
			t.Fatal(err)
		}
		if msg.ID <= last {
			t.Fatalf("expected id > %d, got %d", last, msg.ID)
		}
		last = msg.ID
	}
}

func TestCreateSetsCreatedAtOnly(t *testing.T) {
	s := NewMemoryStore()

	msg, err := s.CreateMessage(context.Background(), "u1", "u2", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if msg.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
	if msg.UpdatedAt != nil {
		t.Fatalf("updated_at should be absent on creation, got %v", msg.UpdatedAt)
	}
}

func TestListSortedByCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.CreateMessage(ctx, "u1", "u2", "hi"); err != nil {
			t.Fatal(err)
		}
	}

	messages, err := s.ListMessages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Fatalf("messages out of order at index %d", i)
		}
	}
}

func TestListEmpty(t *testing.T) {
	s := NewMemoryStore()

	messages, err := s.ListMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if messages == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateMessage(ctx, "u1", "u2", "hi")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.UpdateMessage(ctx, created.ID, "edited")
	if err != nil {
		t.Fatal(err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.UpdatedAt == nil {
		t.Fatal("updated_at not set")
	}
	if updated.UpdatedAt.Before(created.CreatedAt) {
		t.Fatalf("updated_at %v before created_at %v", updated.UpdatedAt, created.CreatedAt)
	}
	if updated.Content != "edited" {
		t.Fatalf("content not updated: %q", updated.Content)
	}
}

func TestUpdateMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.UpdateMessage(context.Background(), 999, "edited")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	msg, err := s.CreateMessage(ctx, "u1", "u2", "hi")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteMessage(ctx, msg.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetMessage(ctx, msg.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	s := NewMemoryStore()

	err := s.DeleteMessage(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
