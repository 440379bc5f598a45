package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alumni-network/internal/domain"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MessageRepository) ListThread(ctx context.Context, userA, userB uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, userA, userB)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MessageRepository) MarkThreadRead(ctx context.Context, readerID, senderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, readerID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, id int64, receiverID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, receiverID)
	return args.Bool(0), args.Error(1)
}

func (m *MessageRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}
