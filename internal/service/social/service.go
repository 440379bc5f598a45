package social

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alumni-network/internal/domain"
	"alumni-network/internal/pkg/validate"
	"alumni-network/internal/repository"
	"alumni-network/internal/service/avatar"
	"alumni-network/internal/service/notification"
)

type Service interface {
	ToggleLike(ctx context.Context, actor domain.Identity, postID uuid.UUID) (*domain.LikeResult, error)
	AddComment(ctx context.Context, actor domain.Identity, postID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	DeleteComment(ctx context.Context, actor domain.Identity, commentID uuid.UUID) error
	SharePost(ctx context.Context, actor domain.Identity, postID uuid.UUID) error
}

type Options struct {
	// RetractCommentNotifications removes the owner's comment notification when
	// the comment is deleted.
	RetractCommentNotifications bool
}

type service struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	notifier    notification.Service
	avatars     avatar.Resolver
	log         logrus.FieldLogger
	opts        Options
}

func NewService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	notifier notification.Service,
	avatars avatar.Resolver,
	log logrus.FieldLogger,
	opts Options,
) Service {
	return &service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
		avatars:     avatars,
		log:         log,
		opts:        opts,
	}
}

func (s *service) ToggleLike(ctx context.Context, actor domain.Identity, postID uuid.UUID) (*domain.LikeResult, error) {
	const op = "social.toggle_like"

	if err := s.requirePost(ctx, op, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.HasLiked(ctx, postID, actor.UserID)
	if err != nil {
		return nil, domain.Storage(op, err)
	}

	if liked {
		removed, err := s.postRepo.RemoveLike(ctx, postID, actor.UserID)
		if err != nil {
			return nil, domain.Storage(op, err)
		}
		if removed {
			if err := s.postRepo.DecrementLikes(ctx, postID); err != nil {
				return nil, domain.Storage(op, err)
			}
			s.fanout(op, postID, actor.UserID, s.notifier.RetractLike(ctx, postID, actor.UserID))
		}
	} else {
		added, err := s.postRepo.AddLike(ctx, postID, actor.UserID)
		if err != nil {
			return nil, domain.Storage(op, err)
		}
		if added {
			if err := s.postRepo.IncrementLikes(ctx, postID); err != nil {
				return nil, domain.Storage(op, err)
			}
			s.fanout(op, postID, actor.UserID, s.notifier.NotifyLike(ctx, postID, actor.UserID))
		}
	}

	count, err := s.postRepo.LikesCount(ctx, postID)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	return &domain.LikeResult{Liked: !liked, LikesCount: count}, nil
}

func (s *service) AddComment(ctx context.Context, actor domain.Identity, postID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	const op = "social.add_comment"

	input.Body = strings.TrimSpace(input.Body)
	if err := validate.Struct(op, input); err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, op, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:     uuid.New(),
		PostID: postID,
		UserID: actor.UserID,
		Body:   input.Body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, domain.Storage(op, err)
	}

	s.fanout(op, postID, actor.UserID, s.notifier.NotifyComment(ctx, comment))

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	if created == nil {
		return nil, domain.NotFound(op, "comment")
	}
	s.resolveAuthor(ctx, created)
	return created, nil
}

func (s *service) ListComments(ctx context.Context, postID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	const op = "social.list_comments"

	params.Validate()
	if err := s.requirePost(ctx, op, postID); err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	comments, total, err := s.commentRepo.ListByPost(ctx, postID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, domain.Storage(op, err)
	}
	for i := range comments {
		s.resolveAuthor(ctx, &comments[i])
	}

	return domain.NewPaginatedResponse(comments, params, total), nil
}

func (s *service) DeleteComment(ctx context.Context, actor domain.Identity, commentID uuid.UUID) error {
	const op = "social.delete_comment"

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return domain.Storage(op, err)
	}
	if comment == nil {
		return domain.NotFound(op, "comment")
	}
	if comment.UserID != actor.UserID && !actor.IsAdmin() {
		return domain.Forbidden(op, "only the author or an admin can delete a comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return domain.Storage(op, err)
	}

	if s.opts.RetractCommentNotifications {
		s.fanout(op, comment.PostID, actor.UserID, s.notifier.RetractComment(ctx, commentID))
	}
	return nil
}

// SharePost has no record of its own; the owner's notification is its only
// effect.
func (s *service) SharePost(ctx context.Context, actor domain.Identity, postID uuid.UUID) error {
	const op = "social.share_post"

	if err := s.requirePost(ctx, op, postID); err != nil {
		return err
	}
	s.fanout(op, postID, actor.UserID, s.notifier.NotifyShare(ctx, postID, actor.UserID))
	return nil
}

func (s *service) requirePost(ctx context.Context, op string, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return domain.Storage(op, err)
	}
	if post == nil {
		return domain.NotFound(op, "post")
	}
	return nil
}

// fanout logs a failed notification step. The primary action has already
// been stored and stays committed.
func (s *service) fanout(op string, postID, actorID uuid.UUID, err error) {
	if err == nil {
		return
	}
	s.log.WithError(err).WithFields(logrus.Fields{
		"op":       op,
		"post_id":  postID,
		"actor_id": actorID,
		"step":     domain.OpOf(err),
	}).Warn("notification fan-out failed")
}

func (s *service) resolveAuthor(ctx context.Context, c *domain.Comment) {
	if c.User != nil {
		c.User.AvatarURL = s.avatars.Resolve(ctx, c.User.AvatarURL)
	}
}
