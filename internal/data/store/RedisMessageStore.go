package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/data/redisStore"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

// historyDepth caps how many past exchanges get fed back into the prompt.
const historyDepth = 5

type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logx.Logger
}

// GetRedisMessageStore returns nil when redis is unreachable.
func GetRedisMessageStore(ctx context.Context, cfg config.RedisConfig) *RedisMessageStore {
	inner := redisStore.GetRedisStore(ctx, cfg, config.RedisMessageStore)
	if inner == nil {
		return nil
	}
	return &RedisMessageStore{
		store:  inner,
		logger: logx.NewLogger("message_store"),
	}
}

func (s *RedisMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", chatId)
	log.Debug("Validating chatId")
	isFound, err := s.store.Exists(ctx, chatId)
	if s.store.IsNil(err) {
		return false
	} else if err != nil {
		log.Error("Failed to check if chatId exists", "error", err)
		return false
	}
	return isFound
}

func (s *RedisMessageStore) TrySaveChat(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", id)
	if !s.ValidateChatId(ctx, id) {
		err := errors.New("invalid chat id")
		log.Error("Failed validation before saving", "error", err)
		return err
	}
	return s.saveExchange(ctx, id, conversation)
}

func (s *RedisMessageStore) saveExchange(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", id)
	err := s.store.ListPush(ctx, id, formatExchange(conversation))
	if err != nil {
		log.Error("Error saving chat", "error", err)
		return err
	}
	if err = s.store.Expire(ctx, id, config.RedisMessageStoreTTL); err != nil {
		log.Error("Error refreshing chat TTL", "error", err)
	}
	log.Debug("Saved chat successfully")
	return nil
}

func (s *RedisMessageStore) InitNewChat(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", id)
	log.Debug("Initializing new chat")
	if err := s.store.Del(ctx, id); err != nil && !s.store.IsNil(err) {
		log.Error("Error initializing chat", "error", err)
	}
	return s.saveExchange(ctx, id, jobModel.JobPayload{})
}

func (s *RedisMessageStore) GetMessageHistory(ctx context.Context, chatId string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", chatId)
	log.Debug("Getting message history")

	res, err := s.store.ListGetRecent(ctx, chatId, historyDepth)
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}

	// Drop the empty marker pushed by InitNewChat
	history := make([]string, 0, len(res))
	for _, entry := range res {
		if entry != "" {
			history = append(history, entry)
		}
	}
	return history, nil
}

// formatExchange renders one question and answer pair as prompt-ready text.
func formatExchange(payload jobModel.JobPayload) string {
	if payload.Question == "" && payload.Answer == "" {
		return ""
	}
	return fmt.Sprintf("User: %s\nAssistant: %s", payload.Question, payload.Answer)
}

func TestMessageStore(store *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  store,
		logger: logx.NewLogger("test_message_store"),
	}
}
