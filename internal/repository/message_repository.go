package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"alumni-network/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListThread(ctx context.Context, userA, userB uuid.UUID) ([]domain.Message, error)
	// MarkThreadRead marks every unread message from senderID to readerID as
	// read and returns how many changed.
	MarkThreadRead(ctx context.Context, readerID, senderID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id int64, receiverID uuid.UUID) (bool, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `
	m.id, m.sender_id, m.receiver_id, m.body, m.is_read, m.created_at,
	s.name AS sender_name, p.profile_picture AS sender_avatar`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := r.db.Rebind(`
		INSERT INTO messages (sender_id, receiver_id, body)
		VALUES (?, ?, ?)
		RETURNING id`)

	return r.db.QueryRowxContext(ctx, query, msg.SenderID, msg.ReceiverID, msg.Body).Scan(&msg.ID)
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var msg domain.Message
	query := r.db.Rebind(`
		SELECT` + messageColumns + `
		FROM messages m
		INNER JOIN users s ON m.sender_id = s.id
		LEFT JOIN profiles p ON p.user_id = s.id
		WHERE m.id = ?`)

	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListThread(ctx context.Context, userA, userB uuid.UUID) ([]domain.Message, error) {
	messages := []domain.Message{}
	query := r.db.Rebind(`
		SELECT` + messageColumns + `
		FROM messages m
		INNER JOIN users s ON m.sender_id = s.id
		LEFT JOIN profiles p ON p.user_id = s.id
		WHERE (m.sender_id = ? AND m.receiver_id = ?)
		   OR (m.sender_id = ? AND m.receiver_id = ?)
		ORDER BY m.created_at ASC, m.id ASC`)

	err := r.db.SelectContext(ctx, &messages, query, userA, userB, userB, userA)
	return messages, err
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, readerID, senderID uuid.UUID) (int64, error) {
	query := r.db.Rebind(`
		UPDATE messages SET is_read = TRUE
		WHERE sender_id = ? AND receiver_id = ? AND is_read = FALSE`)

	res, err := r.db.ExecContext(ctx, query, senderID, readerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64, receiverID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`
		UPDATE messages SET is_read = TRUE
		WHERE id = ? AND receiver_id = ? AND is_read = FALSE`)

	res, err := r.db.ExecContext(ctx, query, id, receiverID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *messageRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND is_read = FALSE`)
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

// ListConversations groups messages by counterpart. The latest message of a
// pair is the one with the highest id, since ids follow insertion order.
func (r *messageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	conversations := []domain.Conversation{}
	query := r.db.Rebind(`
		SELECT
			u.id AS user_id, u.name, u.role, p.profile_picture AS avatar_url,
			m.id AS last_message_id, m.body AS last_message, m.created_at AS last_message_at,
			(SELECT COUNT(*) FROM messages um
			 WHERE um.sender_id = u.id AND um.receiver_id = ? AND um.is_read = FALSE) AS unread_count
		FROM (
			SELECT
				CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS counterpart_id,
				MAX(id) AS last_id
			FROM messages
			WHERE sender_id = ? OR receiver_id = ?
			GROUP BY CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END
		) c
		INNER JOIN messages m ON m.id = c.last_id
		INNER JOIN users u ON u.id = c.counterpart_id
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id != ?
		ORDER BY m.created_at DESC, m.id DESC`)

	err := r.db.SelectContext(ctx, &conversations, query, userID, userID, userID, userID, userID, userID)
	return conversations, err
}
