package message

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"alumni-network/internal/domain"
	"alumni-network/internal/pkg/validate"
	"alumni-network/internal/repository"
	"alumni-network/internal/service/avatar"
)

type Service interface {
	Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	FetchThread(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error)
	MarkRead(ctx context.Context, messageID int64, recipientID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	ListContacts(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
}

type service struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	avatars     avatar.Resolver
}

func NewService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, avatars avatar.Resolver) Service {
	return &service{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		avatars:     avatars,
	}
}

func (s *service) Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	const op = "message.send"

	input.Body = strings.TrimSpace(input.Body)
	if err := validate.Struct(op, input); err != nil {
		return nil, err
	}
	if input.ReceiverID == senderID {
		return nil, domain.Validation(op, "cannot send a message to yourself")
	}

	exists, err := s.userRepo.Exists(ctx, input.ReceiverID)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	if !exists {
		return nil, domain.NotFound(op, "receiver")
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Body:       input.Body,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, domain.Storage(op, err)
	}

	created, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	if created == nil {
		return nil, domain.NotFound(op, "message")
	}
	created.SenderAvatar = s.avatars.Resolve(ctx, created.SenderAvatar)
	return created, nil
}

// FetchThread marks everything the other user sent as read before loading the
// thread, so the returned messages already reflect the new read state.
func (s *service) FetchThread(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error) {
	const op = "message.fetch_thread"

	exists, err := s.userRepo.Exists(ctx, otherID)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	if !exists {
		return nil, domain.NotFound(op, "user")
	}

	if _, err := s.messageRepo.MarkThreadRead(ctx, userID, otherID); err != nil {
		return nil, domain.Storage(op, err)
	}

	messages, err := s.messageRepo.ListThread(ctx, userID, otherID)
	if err != nil {
		return nil, domain.Storage(op, err)
	}

	for i := range messages {
		messages[i].SenderAvatar = s.avatars.Resolve(ctx, messages[i].SenderAvatar)
	}
	return messages, nil
}

func (s *service) MarkRead(ctx context.Context, messageID int64, recipientID uuid.UUID) error {
	if _, err := s.messageRepo.MarkRead(ctx, messageID, recipientID); err != nil {
		return domain.Storage("message.mark_read", err)
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, domain.Storage("message.unread_count", err)
	}
	return count, nil
}

func (s *service) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	conversations, err := s.messageRepo.ListConversations(ctx, userID)
	if err != nil {
		return nil, domain.Storage("message.list_conversations", err)
	}

	for i := range conversations {
		conversations[i].AvatarURL = s.avatars.Resolve(ctx, conversations[i].AvatarURL)
	}
	return conversations, nil
}

func (s *service) ListContacts(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	contacts, err := s.userRepo.ListContacts(ctx, userID)
	if err != nil {
		return nil, domain.Storage("message.list_contacts", err)
	}

	for i := range contacts {
		contacts[i].AvatarURL = s.avatars.Resolve(ctx, contacts[i].AvatarURL)
	}
	return contacts, nil
}
