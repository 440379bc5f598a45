package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"alumni-network/internal/domain"
)

type NotificationRepository interface {
	// Create inserts notif and returns false when a like notification for the
	// same post and actor already exists.
	Create(ctx context.Context, notif *domain.Notification) (bool, error)
	DeleteLike(ctx context.Context, postID, fromUserID uuid.UUID) (int64, error)
	DeleteByComment(ctx context.Context, commentID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.ListNotificationsParams) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO notifications (user_id, from_user_id, post_id, comment_id, type, message)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		notif.UserID, notif.FromUserID, notif.PostID, notif.CommentID, notif.Type, notif.Message,
	).Scan(&notif.ID)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *notificationRepository) DeleteLike(ctx context.Context, postID, fromUserID uuid.UUID) (int64, error) {
	query := r.db.Rebind(`
		DELETE FROM notifications
		WHERE post_id = ? AND from_user_id = ? AND type = ?`)

	res, err := r.db.ExecContext(ctx, query, postID, fromUserID, domain.NotifLike)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) DeleteByComment(ctx context.Context, commentID uuid.UUID) (int64, error) {
	query := r.db.Rebind(`DELETE FROM notifications WHERE comment_id = ?`)
	res, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.ListNotificationsParams) ([]domain.Notification, error) {
	notifications := []domain.Notification{}

	filter := ""
	if params.UnreadOnly {
		filter = "AND n.is_read = FALSE"
	}

	query := r.db.Rebind(`
		SELECT
			n.id, n.user_id, n.from_user_id, n.post_id, n.comment_id, n.type, n.message,
			n.is_read, n.created_at,
			u.name AS from_user_name, pr.profile_picture AS from_user_avatar,
			p.content AS post_content
		FROM notifications n
		INNER JOIN users u ON n.from_user_id = u.id
		LEFT JOIN profiles pr ON pr.user_id = u.id
		LEFT JOIN posts p ON n.post_id = p.id
		WHERE n.user_id = ? ` + filter + `
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT ?`)

	err := r.db.SelectContext(ctx, &notifications, query, userID, params.Limit)
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`
		UPDATE notifications SET is_read = TRUE
		WHERE id = ? AND user_id = ? AND is_read = FALSE`)

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := r.db.Rebind(`UPDATE notifications SET is_read = TRUE WHERE user_id = ? AND is_read = FALSE`)
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = FALSE`)
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
