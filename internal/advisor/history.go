package advisor

import (
	"context"
	"sync"
	"time"

	"greedometer/internal/domain"
)

// MemoryConversationStore keeps a bounded in-memory history per chat. Nothing
// is persisted across restarts.
type MemoryConversationStore struct {
	mu       sync.Mutex
	maxPerID int
	messages map[int64][]domain.ConversationMessage
}

func NewMemoryConversationStore(maxPerID int) *MemoryConversationStore {
	if maxPerID <= 0 {
		maxPerID = 20
	}
	return &MemoryConversationStore{
		maxPerID: maxPerID,
		messages: make(map[int64][]domain.ConversationMessage),
	}
}

func (s *MemoryConversationStore) AppendMessage(ctx context.Context, chatID int64, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.messages[chatID], domain.ConversationMessage{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if len(msgs) > s.maxPerID {
		msgs = msgs[len(msgs)-s.maxPerID:]
	}
	s.messages[chatID] = msgs
	return nil
}

func (s *MemoryConversationStore) RecentMessages(ctx context.Context, chatID int64, limit int) ([]domain.ConversationMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[chatID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domain.ConversationMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
