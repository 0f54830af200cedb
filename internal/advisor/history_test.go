package advisor

import (
	"context"
	"fmt"
	"testing"
)

func TestMemoryConversationStoreBounded(t *testing.T) {
	store := NewMemoryConversationStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.AppendMessage(ctx, 1, "user", fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	msgs, err := store.RecentMessages(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 retained messages, got %d", len(msgs))
	}
	if msgs[0].Content != "msg-2" || msgs[2].Content != "msg-4" {
		t.Fatalf("expected oldest retained message msg-2 and newest msg-4, got %q..%q", msgs[0].Content, msgs[2].Content)
	}
}

func TestMemoryConversationStoreIsolatesChats(t *testing.T) {
	store := NewMemoryConversationStore(10)
	ctx := context.Background()

	_ = store.AppendMessage(ctx, 1, "user", "hello from 1")
	_ = store.AppendMessage(ctx, 2, "user", "hello from 2")

	msgs, err := store.RecentMessages(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello from 1" {
		t.Fatalf("expected only chat 1 messages, got %+v", msgs)
	}
}

func TestMemoryConversationStoreLimit(t *testing.T) {
	store := NewMemoryConversationStore(10)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_ = store.AppendMessage(ctx, 1, "user", fmt.Sprintf("msg-%d", i))
	}

	msgs, _ := store.RecentMessages(ctx, 1, 2)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages with limit=2, got %d", len(msgs))
	}
	if msgs[1].Content != "msg-3" {
		t.Fatalf("expected newest message last, got %q", msgs[1].Content)
	}
}
