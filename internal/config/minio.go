package config

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinIOClient connects to the avatar bucket. It returns nil when no endpoint
// is configured, in which case avatar paths are rendered as public URLs only.
func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
		Region: cfg.MinIORegion,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(context.Background(), cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("avatar bucket %q does not exist", cfg.MinIOBucket)
	}

	return client, nil
}
