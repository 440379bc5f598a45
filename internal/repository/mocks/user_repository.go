package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alumni-network/internal/domain"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatar string) error {
	args := m.Called(ctx, userID, avatar)
	return args.Error(0)
}

func (m *UserRepository) GetSummary(ctx context.Context, id uuid.UUID) (*domain.UserSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSummary), args.Error(1)
}

func (m *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ListContacts(ctx context.Context, excludeID uuid.UUID) ([]domain.UserSummary, error) {
	args := m.Called(ctx, excludeID)
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}
