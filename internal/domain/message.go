package domain

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID           int64     `json:"id" db:"id"`
	SenderID     uuid.UUID `json:"sender_id" db:"sender_id"`
	ReceiverID   uuid.UUID `json:"receiver_id" db:"receiver_id"`
	Body         string    `json:"body" db:"body"`
	IsRead       bool      `json:"is_read" db:"is_read"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	SenderName   string    `json:"sender_name" db:"sender_name"`
	SenderAvatar *string   `json:"sender_avatar,omitempty" db:"sender_avatar"`
}

type SendMessageInput struct {
	ReceiverID uuid.UUID `json:"receiver_id" validate:"required"`
	Body       string    `json:"body" validate:"required,max=5000"`
}

// Conversation is derived from messages: one row per counterpart with at least
// one message in either direction.
type Conversation struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Role          Role      `json:"role" db:"role"`
	AvatarURL     *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	LastMessageID int64     `json:"last_message_id" db:"last_message_id"`
	LastMessage   string    `json:"last_message" db:"last_message"`
	LastMessageAt time.Time `json:"last_message_at" db:"last_message_at"`
	UnreadCount   int64     `json:"unread_count" db:"unread_count"`
}
