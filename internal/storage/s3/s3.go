// Package s3 implements the storage interface for S3-compatible backends.
package s3

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	commonS3 "github.com/hibare/GoCommon/v2/pkg/aws/s3"
	"github.com/zettelkit/zettelkit/internal/config"
)

// S3 stores backup artifacts in an S3-compatible bucket under a fixed
// prefix. Artifact names carry their own timestamps, so keys are stable:
// <prefix>/<artifact name>.
type S3 struct {
	s3  commonS3.ClientIface
	cfg *config.Config
}

// Init prepares the S3 storage by establishing a session.
func (s *S3) Init(ctx context.Context) error {
	s3, err := commonS3.NewClient(ctx, commonS3.Options{
		Endpoint:  s.cfg.Storage.S3.Endpoint,
		Region:    s.cfg.Storage.S3.Region,
		AccessKey: s.cfg.Storage.S3.AccessKey,
		SecretKey: s.cfg.Storage.S3.SecretKey,
	})
	if err != nil {
		return err
	}

	s.s3 = s3

	return nil
}

// Name returns the name of the storage location.
func (s *S3) Name() string {
	return fmt.Sprintf("s3 (%s)", s.cfg.Storage.S3.Bucket)
}

func (s *S3) prefix() string {
	return s.s3.BuildKey(s.cfg.Storage.S3.Prefix)
}

// Upload uploads a local backup artifact to S3 and returns the remote key.
func (s *S3) Upload(ctx context.Context, localPath string) (string, error) {
	prefix := s.prefix()

	slog.DebugContext(ctx, "Uploading backup to S3", "file", localPath, "bucket", s.cfg.Storage.S3.Bucket, "key_prefix", prefix)
	key, err := s.s3.UploadFile(ctx, s.cfg.Storage.S3.Bucket, prefix, localPath)
	if err != nil {
		return "", err
	}
	return key, nil
}

// List returns keys under the configured prefix.
func (s *S3) List(ctx context.Context) ([]string, error) {
	keys, err := s.s3.ListObjectsAtPrefix(ctx, s.cfg.Storage.S3.Bucket, s.prefix())
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Delete removes the named backup from the bucket.
func (s *S3) Delete(ctx context.Context, name string) error {
	key := filepath.Join(s.prefix(), name)
	return s.s3.DeleteObjects(ctx, s.cfg.Storage.S3.Bucket, key, false)
}

// TrimPrefix trims the configured prefix from the given keys, leaving bare
// artifact names.
func (s *S3) TrimPrefix(keys []string) []string {
	return s.s3.TrimPrefix(keys, s.prefix())
}

// NewS3Storage creates a new S3 storage location with the provided configuration.
func NewS3Storage(cfg *config.Config) *S3 {
	return &S3{
		cfg: cfg,
	}
}
