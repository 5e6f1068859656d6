package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/joseiguti/nowoptics-back/internal/models"
)

// MemoryStore is an in-process MessageStore used in development mode and
// by tests. It honors the same contract as RedisStore: a monotonic ID
// counter and created_at-ordered listing.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	messages map[int64]models.Message
}

// NewMemoryStore creates an empty in-memory message store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make(map[int64]models.Message),
	}
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// CreateMessage assigns the next counter value and stores the message.
func (s *MemoryStore) CreateMessage(_ context.Context, senderID, receiverID, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	msg := models.Message{
		ID:         s.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	s.messages[msg.ID] = msg

	return &msg, nil
}

// GetMessage retrieves a message by ID. Returns ErrNotFound if absent.
func (s *MemoryStore) GetMessage(_ context.Context, id int64) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &msg, nil
}

// ListMessages returns all messages sorted ascending by creation time.
func (s *MemoryStore) ListMessages(_ context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]models.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		messages = append(messages, msg)
	}

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

// UpdateMessage replaces a message's content and stamps updated_at.
func (s *MemoryStore) UpdateMessage(_ context.Context, id int64, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	msg.Content = content
	msg.UpdatedAt = &now
	s.messages[id] = msg

	return &msg, nil
}

// DeleteMessage removes a message. Returns ErrNotFound if the ID is absent.
func (s *MemoryStore) DeleteMessage(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return ErrNotFound
	}
	delete(s.messages, id)
	return nil
}
