package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"alumni-network/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `
	c.id, c.post_id, c.user_id, c.body, c.created_at,
	u.name, u.role, p.profile_picture`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := r.db.Rebind(`INSERT INTO comments (id, post_id, user_id, body) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, comment.ID, comment.PostID, comment.UserID, comment.Body)
	return err
}

// GetByID returns the comment joined with its author, or nil if it does not
// exist.
func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := r.db.Rebind(`
		SELECT` + commentColumns + `
		FROM comments c
		INNER JOIN users u ON c.user_id = u.id
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE c.id = ?`)

	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	c, err := scanComment(rows)
	if err != nil {
		return nil, err
	}
	return &c, rows.Err()
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM comments WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM comments WHERE post_id = ?`)
	if err := r.db.GetContext(ctx, &total, countQuery, postID); err != nil {
		return nil, 0, err
	}

	query := r.db.Rebind(`
		SELECT` + commentColumns + `
		FROM comments c
		INNER JOIN users u ON c.user_id = u.id
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?`)

	rows, err := r.db.QueryxContext(ctx, query, postID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}

	return comments, total, rows.Err()
}

func scanComment(rows *sqlx.Rows) (domain.Comment, error) {
	var c domain.Comment
	var user domain.CommentUser
	err := rows.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt,
		&user.Name, &user.Role, &user.AvatarURL,
	)
	if err != nil {
		return c, err
	}
	user.ID = c.UserID
	c.User = &user
	return c, nil
}
