package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"alumni-network/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	// AddLike returns false when the like already exists.
	AddLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	// RemoveLike returns false when there was no like to remove.
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	IncrementLikes(ctx context.Context, postID uuid.UUID) error
	DecrementLikes(ctx context.Context, postID uuid.UUID) error
	LikesCount(ctx context.Context, postID uuid.UUID) (int64, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := r.db.Rebind(`INSERT INTO posts (id, user_id, content) VALUES (?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, post.ID, post.UserID, post.Content)
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	query := r.db.Rebind(`SELECT id, user_id, content, likes_count, created_at FROM posts WHERE id = ?`)

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) HasLiked(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = ? AND user_id = ?)`)
	err := r.db.GetContext(ctx, &exists, query, postID, userID)
	return exists, err
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *postRepository) IncrementLikes(ctx context.Context, postID uuid.UUID) error {
	query := r.db.Rebind(`UPDATE posts SET likes_count = likes_count + 1 WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query, postID)
	return err
}

func (r *postRepository) DecrementLikes(ctx context.Context, postID uuid.UUID) error {
	query := r.db.Rebind(`
		UPDATE posts
		SET likes_count = CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END
		WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query, postID)
	return err
}

func (r *postRepository) LikesCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT likes_count FROM posts WHERE id = ?`)
	err := r.db.GetContext(ctx, &count, query, postID)
	return count, err
}
