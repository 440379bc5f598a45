package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         int64            `json:"id" db:"id"`
	UserID     uuid.UUID        `json:"user_id" db:"user_id"`
	FromUserID uuid.UUID        `json:"from_user_id" db:"from_user_id"`
	PostID     *uuid.UUID       `json:"post_id,omitempty" db:"post_id"`
	CommentID  *uuid.UUID       `json:"comment_id,omitempty" db:"comment_id"`
	Type       NotificationType `json:"type" db:"type"`
	Message    string           `json:"message" db:"message"`
	IsRead     bool             `json:"is_read" db:"is_read"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`

	FromUserName   string  `json:"from_user_name" db:"from_user_name"`
	FromUserAvatar *string `json:"from_user_avatar,omitempty" db:"from_user_avatar"`
	PostContent    *string `json:"-" db:"post_content"`
	PostPreview    *string `json:"post_preview,omitempty" db:"-"`
}

type ListNotificationsParams struct {
	Limit      int  `query:"limit"`
	UnreadOnly bool `query:"unread_only"`
}

// Normalize applies the default limit and clamps it to maxLimit.
func (p *ListNotificationsParams) Normalize(defaultLimit, maxLimit int) {
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
}

type NotificationType string

const (
	NotifLike    NotificationType = "like"
	NotifComment NotificationType = "comment"
	NotifShare   NotificationType = "share"
)

func ParseNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown notification type %q", s)
	}
	return t, nil
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifLike, NotifComment, NotifShare:
		return true
	default:
		return false
	}
}

func (t NotificationType) Value() (driver.Value, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown notification type %q", string(t))
	}
	return string(t), nil
}

func (t *NotificationType) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into NotificationType", src)
	}
	parsed, err := ParseNotificationType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *NotificationType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseNotificationType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
