package store

import (
	"context"
	"sync"

	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
)

type InMemoryMessageStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]jobModel.JobPayload
}

func InitMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]jobModel.JobPayload),
	}
}

func (store *InMemoryMessageStore) ValidateChatId(ctx context.Context, chatId string) bool {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	_, ok := store.chatMap[chatId]
	return ok
}

func (store *InMemoryMessageStore) TrySaveChat(ctx context.Context, id string, conversation jobModel.JobPayload) error {
	if !store.ValidateChatId(ctx, id) {
		return nil
	}
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = append(store.chatMap[id], conversation)
	return nil
}

func (store *InMemoryMessageStore) InitNewChat(ctx context.Context, id string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = make([]jobModel.JobPayload, 0)
	return nil
}

func (store *InMemoryMessageStore) GetMessageHistory(ctx context.Context, chatId string) ([]string, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()

	payloads := store.chatMap[chatId]
	if len(payloads) > historyDepth {
		payloads = payloads[len(payloads)-historyDepth:]
	}

	history := make([]string, 0, len(payloads))
	for _, p := range payloads {
		if line := formatExchange(p); line != "" {
			history = append(history, line)
		}
	}
	return history, nil
}
