package message_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"alumni-network/internal/config"
	"alumni-network/internal/domain"
	"alumni-network/internal/repository/mocks"
	"alumni-network/internal/service/avatar"
	"alumni-network/internal/service/message"
)

func newResolver() avatar.Resolver {
	log, _ := test.NewNullLogger()
	return avatar.NewService(nil, &config.Config{
		MinIOPublicEndpoint: "cdn.local",
		MinIOBucket:         "alumni-avatars",
	}, log)
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()
	sender := uuid.New()
	receiver := uuid.New()

	t.Run("Success", func(t *testing.T) {
		msgRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := message.NewService(msgRepo, userRepo, newResolver())

		avatarKey := "users/a.png"
		userRepo.On("Exists", ctx, receiver).Return(true, nil).Once()
		msgRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.SenderID == sender && m.ReceiverID == receiver && m.Body == "hello"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Message).ID = 7
		}).Return(nil).Once()
		msgRepo.On("GetByID", ctx, int64(7)).Return(&domain.Message{
			ID: 7, SenderID: sender, ReceiverID: receiver, Body: "hello",
			SenderName: "Alice", SenderAvatar: &avatarKey,
		}, nil).Once()

		msg, err := svc.Send(ctx, sender, domain.SendMessageInput{ReceiverID: receiver, Body: "  hello \n"})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), msg.ID)
		assert.False(t, msg.IsRead)
		assert.Equal(t, "Alice", msg.SenderName)
		assert.Equal(t, "http://cdn.local/alumni-avatars/users/a.png", *msg.SenderAvatar)
		msgRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("Whitespace body is rejected before storage", func(t *testing.T) {
		msgRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := message.NewService(msgRepo, userRepo, newResolver())

		msg, err := svc.Send(ctx, sender, domain.SendMessageInput{ReceiverID: receiver, Body: "   "})

		assert.Nil(t, msg)
		assert.ErrorIs(t, err, domain.ErrValidation)
		userRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Self message", func(t *testing.T) {
		svc := message.NewService(new(mocks.MessageRepository), new(mocks.UserRepository), newResolver())

		_, err := svc.Send(ctx, sender, domain.SendMessageInput{ReceiverID: sender, Body: "me"})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown receiver", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := message.NewService(new(mocks.MessageRepository), userRepo, newResolver())
		userRepo.On("Exists", ctx, receiver).Return(false, nil).Once()

		_, err := svc.Send(ctx, sender, domain.SendMessageInput{ReceiverID: receiver, Body: "hi"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Storage failure", func(t *testing.T) {
		msgRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := message.NewService(msgRepo, userRepo, newResolver())

		dbErr := errors.New("connection reset")
		userRepo.On("Exists", ctx, receiver).Return(true, nil).Once()
		msgRepo.On("Create", ctx, mock.Anything).Return(dbErr).Once()

		_, err := svc.Send(ctx, sender, domain.SendMessageInput{ReceiverID: receiver, Body: "hi"})

		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, "message.send", domain.OpOf(err))
	})
}

func TestMessageService_FetchThread(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	other := uuid.New()

	t.Run("Marks read before listing", func(t *testing.T) {
		msgRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := message.NewService(msgRepo, userRepo, newResolver())

		userRepo.On("Exists", ctx, other).Return(true, nil).Once()
		markCall := msgRepo.On("MarkThreadRead", ctx, me, other).Return(int64(2), nil).Once()
		msgRepo.On("ListThread", ctx, me, other).Return([]domain.Message{
			{ID: 1, SenderID: other, ReceiverID: me, IsRead: true},
			{ID: 2, SenderID: me, ReceiverID: other},
		}, nil).Once().NotBefore(markCall)

		thread, err := svc.FetchThread(ctx, me, other)

		assert.NoError(t, err)
		assert.Len(t, thread, 2)
		msgRepo.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := message.NewService(new(mocks.MessageRepository), userRepo, newResolver())
		userRepo.On("Exists", ctx, other).Return(false, nil).Once()

		_, err := svc.FetchThread(ctx, me, other)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMessageService_MarkReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	msgRepo := new(mocks.MessageRepository)
	svc := message.NewService(msgRepo, new(mocks.UserRepository), newResolver())

	msgRepo.On("MarkRead", ctx, int64(3), me).Return(false, nil).Once()

	assert.NoError(t, svc.MarkRead(ctx, 3, me))
	msgRepo.AssertExpectations(t)
}
