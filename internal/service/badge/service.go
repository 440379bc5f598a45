package badge

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// UnreadCounter is satisfied by both the message and notification services.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Badge struct {
	Count               int64  `json:"count"`
	Display             string `json:"display"`
	PollIntervalSeconds int    `json:"poll_interval_seconds"`
}

type Summary struct {
	Notifications Badge `json:"notifications"`
	Messages      Badge `json:"messages"`
}

type Service interface {
	Notifications(ctx context.Context, userID uuid.UUID) (Badge, error)
	Messages(ctx context.Context, userID uuid.UUID) (Badge, error)
	Summary(ctx context.Context, userID uuid.UUID) (Summary, error)
}

type service struct {
	notifications UnreadCounter
	messages      UnreadCounter
	pollInterval  time.Duration
	displayCap    int64
}

func NewService(notifications, messages UnreadCounter, pollInterval time.Duration, displayCap int) Service {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	if displayCap < 1 {
		displayCap = 99
	}
	return &service{
		notifications: notifications,
		messages:      messages,
		pollInterval:  pollInterval,
		displayCap:    int64(displayCap),
	}
}

func (s *service) Notifications(ctx context.Context, userID uuid.UUID) (Badge, error) {
	return s.badge(ctx, s.notifications, userID)
}

func (s *service) Messages(ctx context.Context, userID uuid.UUID) (Badge, error) {
	return s.badge(ctx, s.messages, userID)
}

func (s *service) Summary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	notifications, err := s.Notifications(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	messages, err := s.Messages(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Notifications: notifications, Messages: messages}, nil
}

func (s *service) badge(ctx context.Context, counter UnreadCounter, userID uuid.UUID) (Badge, error) {
	count, err := counter.UnreadCount(ctx, userID)
	if err != nil {
		return Badge{}, err
	}
	return Badge{
		Count:               count,
		Display:             Display(count, s.displayCap),
		PollIntervalSeconds: int(s.pollInterval / time.Second),
	}, nil
}

// Display hides the badge at zero and caps large counts as "<cap>+".
func Display(count, displayCap int64) string {
	switch {
	case count <= 0:
		return ""
	case count > displayCap:
		return strconv.FormatInt(displayCap, 10) + "+"
	default:
		return strconv.FormatInt(count, 10)
	}
}
