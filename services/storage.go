package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/brisaweb/marketing-site-backend/config"
	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// S3ObjectStore uploads binary objects to an S3 bucket and returns
// publicly resolvable URLs. Paths are namespaced by the caller (the
// image generator uses covers/{postID}-{timestamp}.png).
type S3ObjectStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewS3ObjectStore builds a store from configuration. BLOG_IMAGES_BUCKET
// is required; BLOG_IMAGES_PUBLIC_URL overrides the default bucket URL.
// AWS credentials and region come from the default provider chain.
func NewS3ObjectStore(ctx context.Context, conf map[string]string) (*S3ObjectStore, error) {
	bucket := cfg.GetString(conf, "BLOG_IMAGES_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("BLOG_IMAGES_BUCKET is required")
	}

	publicBaseURL := cfg.GetString(conf, "BLOG_IMAGES_PUBLIC_URL", "")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &S3ObjectStore{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        log.With().Str("serviceName", "s3ObjectStore").Logger(),
	}, nil
}

// Upload writes the payload under the given path and returns its public
// URL. Existing objects at the same path are overwritten.
func (s *S3ObjectStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	key := strings.TrimPrefix(path, "/")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("upload failed")
		return "", errs.NewStorageError(err)
	}

	url := fmt.Sprintf("%s/%s", s.publicBaseURL, key)
	s.logger.Info().Str("key", key).Str("url", url).Msg("object uploaded")
	return url, nil
}
