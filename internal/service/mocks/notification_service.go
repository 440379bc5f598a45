package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alumni-network/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyLike(ctx context.Context, postID, actorID uuid.UUID) error {
	args := m.Called(ctx, postID, actorID)
	return args.Error(0)
}

func (m *NotificationService) RetractLike(ctx context.Context, postID, actorID uuid.UUID) error {
	args := m.Called(ctx, postID, actorID)
	return args.Error(0)
}

func (m *NotificationService) NotifyComment(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *NotificationService) RetractComment(ctx context.Context, commentID uuid.UUID) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *NotificationService) NotifyShare(ctx context.Context, postID, actorID uuid.UUID) error {
	args := m.Called(ctx, postID, actorID)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, params domain.ListNotificationsParams) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, id int64, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
