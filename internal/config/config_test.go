package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BADGE_POLL_INTERVAL", "")
	t.Setenv("DATABASE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, 30*time.Second, cfg.BadgePollInterval)
	assert.Equal(t, 99, cfg.BadgeDisplayCap)
	assert.Equal(t, 50, cfg.NotificationListLimit)
	assert.True(t, cfg.RetractCommentNotifications)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BADGE_POLL_INTERVAL", "10s")
	t.Setenv("BADGE_DISPLAY_CAP", "9")
	t.Setenv("RETRACT_COMMENT_NOTIFICATIONS", "false")
	t.Setenv("NOTIFICATION_LIST_LIMIT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.BadgePollInterval)
	assert.Equal(t, 9, cfg.BadgeDisplayCap)
	assert.False(t, cfg.RetractCommentNotifications)
	assert.Equal(t, 50, cfg.NotificationListLimit)
}

func TestNewDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewDB(&Config{DatabaseDriver: "oracle", DatabaseURL: "x"})
	assert.Error(t, err)

	_, err = NewDB(&Config{DatabaseDriver: DriverPostgres})
	assert.Error(t, err)
}
