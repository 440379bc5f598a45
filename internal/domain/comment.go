package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PostID    uuid.UUID `json:"post_id" db:"post_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	User *CommentUser `json:"user,omitempty" db:"-"`
}

type CommentUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	AvatarURL *string   `json:"avatar_url"`
}

type CreateCommentInput struct {
	Body string `json:"body" validate:"required,max=2000"`
}
