package store

import (
	"context"
	"errors"

	"github.com/joseiguti/nowoptics-back/internal/models"
)

// ErrNotFound is returned when a message ID does not exist in the store.
// Absence is a normal outcome for lookups and deletes, not a failure.
var ErrNotFound = errors.New("message not found")

// MessageStore defines the persistence capability for chat messages.
// Both RedisStore and MemoryStore implement this interface.
type MessageStore interface {
	// Connection management
	Close() error
	Ping(ctx context.Context) error

	// Message operations
	CreateMessage(ctx context.Context, senderID, receiverID, content string) (*models.Message, error)
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	UpdateMessage(ctx context.Context, id int64, content string) (*models.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
}
