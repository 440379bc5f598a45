package avatar

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"

	"alumni-network/internal/config"
)

// Resolver turns a stored profile picture reference into a URL a client can load.
type Resolver interface {
	Resolve(ctx context.Context, ref *string) *string
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
	log         logrus.FieldLogger
}

// NewService returns a Resolver. minioClient may be nil, in which case only
// public bucket URLs are produced.
func NewService(minioClient *minio.Client, cfg *config.Config, log logrus.FieldLogger) Resolver {
	return &service{minioClient: minioClient, cfg: cfg, log: log}
}

func (s *service) Resolve(ctx context.Context, ref *string) *string {
	if ref == nil {
		return nil
	}
	key := strings.TrimSpace(*ref)
	if key == "" {
		return nil
	}
	if isAbsolute(key) {
		return &key
	}
	key = strings.TrimPrefix(key, "/")

	if s.cfg.MinIOPresignAvatars && s.minioClient != nil {
		u, err := s.minioClient.PresignedGetObject(ctx, s.cfg.MinIOBucket, key, s.expiry(), nil)
		if err == nil {
			signed := u.String()
			return &signed
		}
		s.log.WithError(err).WithField("object", key).Warn("failed to presign avatar, using public url")
	}

	public := s.getPublicURL(key)
	return &public
}

func (s *service) expiry() time.Duration {
	if s.cfg.AvatarURLExpiry <= 0 {
		return time.Hour
	}
	return s.cfg.AvatarURLExpiry
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}

	segments := strings.Split(storagePath, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, strings.Join(segments, "/"))
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
