package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joseiguti/nowoptics-back/internal/models"
)

// seqKey is the counter used for ID generation. It lives outside the
// message:* prefix so listing never sweeps it up.
const seqKey = "seq:message"

// RedisStore persists messages as Redis hashes, one per message,
// with a shared INCR counter for ID assignment.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed message store.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// messageKey returns the hash key for a message ID.
func messageKey(id int64) string {
	return fmt.Sprintf("message:%d", id)
}

// CreateMessage assigns the next ID from the counter and stores the message.
// INCR guarantees IDs are globally unique and strictly increasing even
// under concurrent callers.
func (s *RedisStore) CreateMessage(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	id, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:         id,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.client.HSet(ctx, messageKey(id), map[string]interface{}{
		"id":          strconv.FormatInt(id, 10),
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"content":     content,
		"created_at":  msg.CreatedAt.Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// GetMessage retrieves a message by ID. Returns ErrNotFound if absent.
func (s *RedisStore) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	fields, err := s.client.HGetAll(ctx, messageKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return messageFromHash(fields)
}

// ListMessages scans the message:* prefix and returns all messages
// sorted ascending by creation time. SCAN order is unspecified, so the
// sort happens here regardless of how Redis iterates.
func (s *RedisStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	messages := make([]models.Message, 0)

	iter := s.client.Scan(ctx, 0, "message:*", 0).Iterator()
	for iter.Next(ctx) {
		fields, err := s.client.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue // deleted between scan and fetch
		}
		msg, err := messageFromHash(fields)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	if err := iter.Err(); err != nil {
		return nil, err
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
// created_at is never touched. Returns ErrNotFound if the ID is absent.
func (s *RedisStore) UpdateMessage(ctx context.Context, id int64, content string) (*models.Message, error) {
	msg, err := s.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = s.client.HSet(ctx, messageKey(id), map[string]interface{}{
		"content":    content,
		"updated_at": now.Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return nil, err
	}

	msg.Content = content
	msg.UpdatedAt = &now
	return msg, nil
}

// DeleteMessage removes a message. Returns ErrNotFound if the ID is absent.
func (s *RedisStore) DeleteMessage(ctx context.Context, id int64) error {
	deleted, err := s.client.Del(ctx, messageKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// messageFromHash parses a Redis hash into a Message.
func messageFromHash(fields map[string]string) (*models.Message, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid message id %q: %w", fields["id"], err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid created_at for message %d: %w", id, err)
	}

	msg := &models.Message{
		ID:         id,
		SenderID:   fields["sender_id"],
		ReceiverID: fields["receiver_id"],
		Content:    fields["content"],
		CreatedAt:  createdAt,
	}

	if raw, ok := fields["updated_at"]; ok && raw != "" {
		updatedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid updated_at for message %d: %w", id, err)
		}
		msg.UpdatedAt = &updatedAt
	}

	return msg, nil
}
