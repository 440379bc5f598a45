package avatar

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-network/internal/config"
)

func strPtr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		MinIOPublicEndpoint: "cdn.example.org",
		MinIOPublicUseSSL:   true,
		MinIOBucket:         "alumni-avatars",
		MinIORegion:         "us-east-1",
	}
}

func TestResolve_PublicURL(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := NewService(nil, testConfig(), log)
	ctx := context.Background()

	assert.Nil(t, r.Resolve(ctx, nil))
	assert.Nil(t, r.Resolve(ctx, strPtr("  ")))

	got := r.Resolve(ctx, strPtr("users/42/me photo.png"))
	require.NotNil(t, got)
	assert.Equal(t, "https://cdn.example.org/alumni-avatars/users/42/me%20photo.png", *got)

	abs := r.Resolve(ctx, strPtr("https://gravatar.example/a.png"))
	require.NotNil(t, abs)
	assert.Equal(t, "https://gravatar.example/a.png", *abs)
}

func TestResolve_Presigned(t *testing.T) {
	cfg := testConfig()
	cfg.MinIOPresignAvatars = true

	// With a fixed region the client signs locally without contacting the server.
	client, err := minio.New("storage.internal:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: cfg.MinIORegion,
	})
	require.NoError(t, err)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	r := NewService(client, cfg, log)

	got := r.Resolve(context.Background(), strPtr("/users/42/avatar.png"))
	require.NotNil(t, got)
	assert.Contains(t, *got, "http://storage.internal:9000/alumni-avatars/users/42/avatar.png?")
	assert.Contains(t, *got, "X-Amz-Signature=")
	assert.Empty(t, hook.AllEntries())
}
