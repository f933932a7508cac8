package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/data/redisStore"
	"github.com/communitydesk/helpdesk/internal/data/store"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/redis/go-redis/v9"
)

func newTestMessageStore(t *testing.T) (*store.RedisMessageStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestMessageStore(redisStore.NewTestStore(client)), mr
}

func TestRedisMessageStore_ChatLifecycle(t *testing.T) {
	msgStore, _ := newTestMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "chat-trace")
	chatID := "chat-123"

	if msgStore.ValidateChatId(ctx, chatID) {
		t.Error("Chat should not exist before InitNewChat")
	}

	if err := msgStore.InitNewChat(ctx, chatID); err != nil {
		t.Fatalf("InitNewChat failed: %v", err)
	}

	if !msgStore.ValidateChatId(ctx, chatID) {
		t.Error("Chat should exist after InitNewChat")
	}

	err := msgStore.TrySaveChat(ctx, chatID, jobModel.JobPayload{
		Question: "Where is the nearest hospital?",
		Answer:   "Apollo Hospital on Greams Road.",
	})
	if err != nil {
		t.Fatalf("TrySaveChat failed: %v", err)
	}

	history, err := msgStore.GetMessageHistory(ctx, chatID)
	if err != nil {
		t.Fatalf("GetMessageHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 exchange, got %d", len(history))
	}
	if !strings.Contains(history[0], "User: Where is the nearest hospital?") ||
		!strings.Contains(history[0], "Assistant: Apollo Hospital") {
		t.Errorf("Unexpected history entry: %q", history[0])
	}
}

func TestRedisMessageStore_RejectsUnknownChat(t *testing.T) {
	msgStore, _ := newTestMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "chat-trace")

	err := msgStore.TrySaveChat(ctx, "never-initialized", jobModel.JobPayload{Question: "q", Answer: "a"})
	if err == nil {
		t.Error("Expected error when saving to an unknown chat id")
	}
}

func TestRedisMessageStore_HistoryDepth(t *testing.T) {
	msgStore, _ := newTestMessageStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "chat-trace")
	chatID := "chat-deep"

	if err := msgStore.InitNewChat(ctx, chatID); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		err := msgStore.TrySaveChat(ctx, chatID, jobModel.JobPayload{
			Question: "question",
			Answer:   "answer",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := msgStore.GetMessageHistory(ctx, chatID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) > 5 {
		t.Errorf("History should be capped at 5 exchanges, got %d", len(history))
	}
}

func TestInMemoryMessageStore(t *testing.T) {
	msgStore := store.InitMessageStore()
	ctx := context.Background()

	// Unknown chats are silently skipped
	if err := msgStore.TrySaveChat(ctx, "nope", jobModel.JobPayload{Question: "q"}); err != nil {
		t.Fatalf("TrySaveChat on unknown chat should be a no-op, got %v", err)
	}

	if err := msgStore.InitNewChat(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	if err := msgStore.TrySaveChat(ctx, "c1", jobModel.JobPayload{Question: "q1", Answer: "a1"}); err != nil {
		t.Fatal(err)
	}

	history, err := msgStore.GetMessageHistory(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || !strings.Contains(history[0], "q1") {
		t.Errorf("Unexpected history: %v", history)
	}
}
