package social_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alumni-network/internal/config"
	"alumni-network/internal/domain"
	repomocks "alumni-network/internal/repository/mocks"
	"alumni-network/internal/service/avatar"
	svcmocks "alumni-network/internal/service/mocks"
	"alumni-network/internal/service/social"
)

type fixture struct {
	posts    *repomocks.PostRepository
	comments *repomocks.CommentRepository
	notifier *svcmocks.NotificationService
	hook     *test.Hook
	svc      social.Service
}

func newFixture(retract bool) *fixture {
	log, hook := test.NewNullLogger()
	f := &fixture{
		posts:    new(repomocks.PostRepository),
		comments: new(repomocks.CommentRepository),
		notifier: new(svcmocks.NotificationService),
		hook:     hook,
	}
	resolver := avatar.NewService(nil, &config.Config{MinIOPublicEndpoint: "cdn", MinIOBucket: "b"}, log)
	f.svc = social.NewService(f.posts, f.comments, f.notifier, resolver, log,
		social.Options{RetractCommentNotifications: retract})
	return f
}

func TestSocialService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	actor := domain.Identity{UserID: uuid.New(), Role: domain.RoleStudent}
	post := &domain.Post{ID: postID, UserID: uuid.New()}

	t.Run("Like", func(t *testing.T) {
		f := newFixture(true)
		f.posts.On("GetByID", ctx, postID).Return(post, nil).Once()
		f.posts.On("HasLiked", ctx, postID, actor.UserID).Return(false, nil).Once()
		f.posts.On("AddLike", ctx, postID, actor.UserID).Return(true, nil).Once()
		f.posts.On("IncrementLikes", ctx, postID).Return(nil).Once()
		f.notifier.On("NotifyLike", ctx, postID, actor.UserID).Return(nil).Once()
		f.posts.On("LikesCount", ctx, postID).Return(int64(1), nil).Once()

		res, err := f.svc.ToggleLike(ctx, actor, postID)

		require.NoError(t, err)
		assert.Equal(t, &domain.LikeResult{Liked: true, LikesCount: 1}, res)
		f.posts.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Unlike", func(t *testing.T) {
		f := newFixture(true)
		f.posts.On("GetByID", ctx, postID).Return(post, nil).Once()
		f.posts.On("HasLiked", ctx, postID, actor.UserID).Return(true, nil).Once()
		f.posts.On("RemoveLike", ctx, postID, actor.UserID).Return(true, nil).Once()
		f.posts.On("DecrementLikes", ctx, postID).Return(nil).Once()
		f.notifier.On("RetractLike", ctx, postID, actor.UserID).Return(nil).Once()
		f.posts.On("LikesCount", ctx, postID).Return(int64(0), nil).Once()

		res, err := f.svc.ToggleLike(ctx, actor, postID)

		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.Zero(t, res.LikesCount)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Concurrent like already applied", func(t *testing.T) {
		f := newFixture(true)
		f.posts.On("GetByID", ctx, postID).Return(post, nil).Once()
		f.posts.On("HasLiked", ctx, postID, actor.UserID).Return(false, nil).Once()
		f.posts.On("AddLike", ctx, postID, actor.UserID).Return(false, nil).Once()
		f.posts.On("LikesCount", ctx, postID).Return(int64(1), nil).Once()

		res, err := f.svc.ToggleLike(ctx, actor, postID)

		require.NoError(t, err)
		assert.True(t, res.Liked)
		f.posts.AssertNotCalled(t, "IncrementLikes", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "NotifyLike", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Notification failure is logged and swallowed", func(t *testing.T) {
		f := newFixture(true)
		f.posts.On("GetByID", ctx, postID).Return(post, nil).Once()
		f.posts.On("HasLiked", ctx, postID, actor.UserID).Return(false, nil).Once()
		f.posts.On("AddLike", ctx, postID, actor.UserID).Return(true, nil).Once()
		f.posts.On("IncrementLikes", ctx, postID).Return(nil).Once()
		f.notifier.On("NotifyLike", ctx, postID, actor.UserID).
			Return(domain.Storage("notification.notify_like", errors.New("disk full"))).Once()
		f.posts.On("LikesCount", ctx, postID).Return(int64(1), nil).Once()

		res, err := f.svc.ToggleLike(ctx, actor, postID)

		require.NoError(t, err)
		assert.True(t, res.Liked)
		require.Len(t, f.hook.AllEntries(), 1)
		entry := f.hook.LastEntry()
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, "social.toggle_like", entry.Data["op"])
		assert.Equal(t, "notification.notify_like", entry.Data["step"])
		assert.Equal(t, postID, entry.Data["post_id"])
	})

	t.Run("Primary failure aborts", func(t *testing.T) {
		f := newFixture(true)
		f.posts.On("GetByID", ctx, postID).Return(post, nil).Once()
		f.posts.On("HasLiked", ctx, postID, actor.UserID).Return(false, nil).Once()
		f.posts.On("AddLike", ctx, postID, actor.UserID).Return(false, errors.New("timeout")).Once()

		res, err := f.svc.ToggleLike(ctx, actor, postID)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrStorage)
		f.notifier.AssertNotCalled(t, "NotifyLike", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing post", func(t *testing.T) {
		f := newFixture(true)
		f.posts.On("GetByID", ctx, postID).Return(nil, nil).Once()

		_, err := f.svc.ToggleLike(ctx, actor, postID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSocialService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	author := domain.Identity{UserID: uuid.New(), Role: domain.RoleStudent}
	stranger := domain.Identity{UserID: uuid.New(), Role: domain.RoleAlumni}
	admin := domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}
	comment := &domain.Comment{ID: uuid.New(), PostID: uuid.New(), UserID: author.UserID}

	t.Run("Stranger is forbidden", func(t *testing.T) {
		f := newFixture(true)
		f.comments.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()

		err := f.svc.DeleteComment(ctx, stranger, comment.ID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Admin deletes and retracts", func(t *testing.T) {
		f := newFixture(true)
		f.comments.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()
		f.comments.On("Delete", ctx, comment.ID).Return(nil).Once()
		f.notifier.On("RetractComment", ctx, comment.ID).Return(nil).Once()

		assert.NoError(t, f.svc.DeleteComment(ctx, admin, comment.ID))
		f.notifier.AssertExpectations(t)
	})

	t.Run("Author deletes without retraction when disabled", func(t *testing.T) {
		f := newFixture(false)
		f.comments.On("GetByID", ctx, comment.ID).Return(comment, nil).Once()
		f.comments.On("Delete", ctx, comment.ID).Return(nil).Once()

		assert.NoError(t, f.svc.DeleteComment(ctx, author, comment.ID))
		f.notifier.AssertNotCalled(t, "RetractComment", mock.Anything, mock.Anything)
	})

	t.Run("Missing comment", func(t *testing.T) {
		f := newFixture(true)
		f.comments.On("GetByID", ctx, comment.ID).Return(nil, nil).Once()

		err := f.svc.DeleteComment(ctx, author, comment.ID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSocialService_AddComment(t *testing.T) {
	ctx := context.Background()
	actor := domain.Identity{UserID: uuid.New(), Role: domain.RoleStudent}
	postID := uuid.New()

	t.Run("Empty body", func(t *testing.T) {
		f := newFixture(true)

		_, err := f.svc.AddComment(ctx, actor, postID, domain.CreateCommentInput{Body: " \t"})

		assert.ErrorIs(t, err, domain.ErrValidation)
		f.posts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Success with swallowed notification failure", func(t *testing.T) {
		f := newFixture(true)
		avatarKey := "u/a.png"
		f.posts.On("GetByID", ctx, postID).Return(&domain.Post{ID: postID, UserID: uuid.New()}, nil).Once()
		f.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Body == "Selamat!" && c.PostID == postID && c.UserID == actor.UserID
		})).Return(nil).Once()
		f.notifier.On("NotifyComment", ctx, mock.Anything).Return(domain.NotFound("notification.notify_comment", "actor")).Once()
		f.comments.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(&domain.Comment{
			PostID: postID, UserID: actor.UserID, Body: "Selamat!",
			User: &domain.CommentUser{ID: actor.UserID, Name: "Rina", Role: domain.RoleStudent, AvatarURL: &avatarKey},
		}, nil).Once()

		c, err := f.svc.AddComment(ctx, actor, postID, domain.CreateCommentInput{Body: " Selamat! "})

		require.NoError(t, err)
		assert.Equal(t, "Rina", c.User.Name)
		assert.Equal(t, "http://cdn/b/u/a.png", *c.User.AvatarURL)
		assert.Len(t, f.hook.AllEntries(), 1)
	})
}

func TestSocialService_SharePost(t *testing.T) {
	ctx := context.Background()
	actor := domain.Identity{UserID: uuid.New(), Role: domain.RoleAlumni}
	postID := uuid.New()

	f := newFixture(true)
	f.posts.On("GetByID", ctx, postID).Return(&domain.Post{ID: postID, UserID: uuid.New()}, nil).Once()
	f.notifier.On("NotifyShare", ctx, postID, actor.UserID).Return(nil).Once()

	assert.NoError(t, f.svc.SharePost(ctx, actor, postID))
	f.notifier.AssertExpectations(t)
}
