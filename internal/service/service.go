package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"

	"alumni-network/internal/config"
	"alumni-network/internal/pkg/i18n"
	"alumni-network/internal/repository"
	"alumni-network/internal/service/auth"
	"alumni-network/internal/service/avatar"
	"alumni-network/internal/service/badge"
	"alumni-network/internal/service/message"
	"alumni-network/internal/service/notification"
	"alumni-network/internal/service/social"
)

type Services struct {
	Auth         auth.Service
	Avatar       avatar.Resolver
	Message      message.Service
	Notification notification.Service
	Social       social.Service
	Badge        badge.Service
}

func NewServices(repos *repository.Repositories, minioClient *minio.Client, catalog *i18n.Catalog, cfg *config.Config, log logrus.FieldLogger) *Services {
	avatarService := avatar.NewService(minioClient, cfg, log)
	messageService := message.NewService(repos.Message, repos.User, avatarService)
	notificationService := notification.NewService(
		repos.Notification,
		repos.Post,
		repos.User,
		catalog,
		avatarService,
		cfg.NotificationListLimit,
	)
	socialService := social.NewService(
		repos.Post,
		repos.Comment,
		notificationService,
		avatarService,
		log,
		social.Options{RetractCommentNotifications: cfg.RetractCommentNotifications},
	)
	badgeService := badge.NewService(notificationService, messageService, cfg.BadgePollInterval, cfg.BadgeDisplayCap)

	return &Services{
		Auth:         auth.NewService(cfg),
		Avatar:       avatarService,
		Message:      messageService,
		Notification: notificationService,
		Social:       socialService,
		Badge:        badgeService,
	}
}
