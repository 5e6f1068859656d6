package models

import "time"

// Message represents a chat message persisted in the store.
// UpdatedAt is nil until the message is updated for the first time,
// so the JSON field is absent on freshly created messages.
type Message struct {
	ID         int64      `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// MessageRef carries only a message ID; used as the payload of
// delete notifications.
type MessageRef struct {
	ID int64 `json:"id"`
}
