package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"alumni-network/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	SetAvatar(ctx context.Context, userID uuid.UUID, avatar string) error
	GetSummary(ctx context.Context, id uuid.UUID) (*domain.UserSummary, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListContacts(ctx context.Context, excludeID uuid.UUID) ([]domain.UserSummary, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (id, name, email, role)
		VALUES (?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Role)
	return err
}

func (r *userRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatar string) error {
	query := r.db.Rebind(`
		INSERT INTO profiles (user_id, profile_picture) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET profile_picture = excluded.profile_picture`)

	_, err := r.db.ExecContext(ctx, query, userID, avatar)
	return err
}

func (r *userRepository) GetSummary(ctx context.Context, id uuid.UUID) (*domain.UserSummary, error) {
	var user domain.UserSummary
	query := r.db.Rebind(`
		SELECT u.id, u.name, u.role, p.profile_picture AS avatar_url
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = ?`)

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`)
	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, err
}

func (r *userRepository) ListContacts(ctx context.Context, excludeID uuid.UUID) ([]domain.UserSummary, error) {
	users := []domain.UserSummary{}
	query := r.db.Rebind(`
		SELECT u.id, u.name, u.role, p.profile_picture AS avatar_url
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id != ?
		ORDER BY u.name`)

	err := r.db.SelectContext(ctx, &users, query, excludeID)
	return users, err
}
