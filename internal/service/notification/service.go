package notification

import (
	"context"

	"github.com/google/uuid"

	"alumni-network/internal/domain"
	"alumni-network/internal/repository"
	"alumni-network/internal/service/avatar"
)

const (
	maxListLimit = 100
	previewRunes = 50
)

type Service interface {
	NotifyLike(ctx context.Context, postID, actorID uuid.UUID) error
	RetractLike(ctx context.Context, postID, actorID uuid.UUID) error
	NotifyComment(ctx context.Context, comment *domain.Comment) error
	RetractComment(ctx context.Context, commentID uuid.UUID) error
	NotifyShare(ctx context.Context, postID, actorID uuid.UUID) error

	List(ctx context.Context, userID uuid.UUID, params domain.ListNotificationsParams) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Renderer produces the stored notification text for a template key.
type Renderer interface {
	Render(key, actor string) string
}

type service struct {
	notifRepo    repository.NotificationRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	renderer     Renderer
	avatars      avatar.Resolver
	defaultLimit int
}

func NewService(
	notifRepo repository.NotificationRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	renderer Renderer,
	avatars avatar.Resolver,
	defaultLimit int,
) Service {
	if defaultLimit < 1 {
		defaultLimit = 50
	}
	return &service{
		notifRepo:    notifRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		renderer:     renderer,
		avatars:      avatars,
		defaultLimit: defaultLimit,
	}
}

// recipient resolves the post owner and actor for a fan-out. ok is false when
// the actor owns the post.
func (s *service) recipient(ctx context.Context, op string, postID, actorID uuid.UUID) (owner uuid.UUID, actorName string, ok bool, err error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return uuid.Nil, "", false, domain.Storage(op, err)
	}
	if post == nil {
		return uuid.Nil, "", false, domain.NotFound(op, "post")
	}
	if post.UserID == actorID {
		return post.UserID, "", false, nil
	}

	actor, err := s.userRepo.GetSummary(ctx, actorID)
	if err != nil {
		return uuid.Nil, "", false, domain.Storage(op, err)
	}
	if actor == nil {
		return uuid.Nil, "", false, domain.NotFound(op, "actor")
	}
	return post.UserID, actor.Name, true, nil
}

func (s *service) NotifyLike(ctx context.Context, postID, actorID uuid.UUID) error {
	const op = "notification.notify_like"

	owner, actorName, ok, err := s.recipient(ctx, op, postID, actorID)
	if err != nil || !ok {
		return err
	}

	if _, err := s.notifRepo.DeleteLike(ctx, postID, actorID); err != nil {
		return domain.Storage(op, err)
	}

	notif := &domain.Notification{
		UserID:     owner,
		FromUserID: actorID,
		PostID:     &postID,
		Type:       domain.NotifLike,
		Message:    s.renderer.Render(string(domain.NotifLike), actorName),
	}
	// A concurrent like for the same pair already produced the row.
	if _, err := s.notifRepo.Create(ctx, notif); err != nil {
		return domain.Storage(op, err)
	}
	return nil
}

func (s *service) RetractLike(ctx context.Context, postID, actorID uuid.UUID) error {
	if _, err := s.notifRepo.DeleteLike(ctx, postID, actorID); err != nil {
		return domain.Storage("notification.retract_like", err)
	}
	return nil
}

func (s *service) NotifyComment(ctx context.Context, comment *domain.Comment) error {
	const op = "notification.notify_comment"

	owner, actorName, ok, err := s.recipient(ctx, op, comment.PostID, comment.UserID)
	if err != nil || !ok {
		return err
	}

	postID, commentID := comment.PostID, comment.ID
	notif := &domain.Notification{
		UserID:     owner,
		FromUserID: comment.UserID,
		PostID:     &postID,
		CommentID:  &commentID,
		Type:       domain.NotifComment,
		Message:    s.renderer.Render(string(domain.NotifComment), actorName),
	}
	if _, err := s.notifRepo.Create(ctx, notif); err != nil {
		return domain.Storage(op, err)
	}
	return nil
}

func (s *service) RetractComment(ctx context.Context, commentID uuid.UUID) error {
	if _, err := s.notifRepo.DeleteByComment(ctx, commentID); err != nil {
		return domain.Storage("notification.retract_comment", err)
	}
	return nil
}

func (s *service) NotifyShare(ctx context.Context, postID, actorID uuid.UUID) error {
	const op = "notification.notify_share"

	owner, actorName, ok, err := s.recipient(ctx, op, postID, actorID)
	if err != nil || !ok {
		return err
	}

	notif := &domain.Notification{
		UserID:     owner,
		FromUserID: actorID,
		PostID:     &postID,
		Type:       domain.NotifShare,
		Message:    s.renderer.Render(string(domain.NotifShare), actorName),
	}
	if _, err := s.notifRepo.Create(ctx, notif); err != nil {
		return domain.Storage(op, err)
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.ListNotificationsParams) ([]domain.Notification, error) {
	params.Normalize(s.defaultLimit, maxListLimit)

	notifications, err := s.notifRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, domain.Storage("notification.list", err)
	}

	for i := range notifications {
		n := &notifications[i]
		n.FromUserAvatar = s.avatars.Resolve(ctx, n.FromUserAvatar)
		if n.PostContent != nil {
			preview := Preview(*n.PostContent)
			n.PostPreview = &preview
		}
	}
	return notifications, nil
}

func (s *service) MarkRead(ctx context.Context, id int64, userID uuid.UUID) error {
	if _, err := s.notifRepo.MarkAsRead(ctx, id, userID); err != nil {
		return domain.Storage("notification.mark_read", err)
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return domain.Storage("notification.mark_all_read", err)
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, domain.Storage("notification.unread_count", err)
	}
	return count, nil
}

// Preview returns the first 50 characters of a post body.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes])
}
