package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alumni-network/internal/domain"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notif *domain.Notification) (bool, error) {
	args := m.Called(ctx, notif)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) DeleteLike(ctx context.Context, postID, fromUserID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID, fromUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) DeleteByComment(ctx context.Context, commentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.ListNotificationsParams) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
