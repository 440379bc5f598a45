// Package repotest opens a migrated SQLite database for tests and seeds the
// external users and posts tables.
package repotest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"alumni-network/internal/config"
	"alumni-network/internal/domain"
	"alumni-network/internal/repository"
)

func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := config.NewDB(&config.Config{DatabaseDriver: config.DriverSQLite, DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = repository.Migrate(context.Background(), db)
	require.NoError(t, err)

	return db
}

func CreateUser(t testing.TB, db *sqlx.DB, name string, role domain.Role) uuid.UUID {
	t.Helper()

	id := uuid.New()
	err := repository.NewUserRepository(db).Create(context.Background(), &domain.User{
		ID:    id,
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, id.String()[:8]),
		Role:  role,
	})
	require.NoError(t, err)
	return id
}

func CreatePost(t testing.TB, db *sqlx.DB, ownerID uuid.UUID, content string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	err := repository.NewPostRepository(db).Create(context.Background(), &domain.Post{
		ID:      id,
		UserID:  ownerID,
		Content: content,
	})
	require.NoError(t, err)
	return id
}

// CountNotifications counts rows of the given type sent by actor about post.
func CountNotifications(t testing.TB, db *sqlx.DB, postID, actorID uuid.UUID, typ domain.NotificationType) int {
	t.Helper()

	var n int
	err := db.Get(&n, db.Rebind(`
		SELECT COUNT(*) FROM notifications
		WHERE post_id = ? AND from_user_id = ? AND type = ?`), postID, actorID, typ)
	require.NoError(t, err)
	return n
}
