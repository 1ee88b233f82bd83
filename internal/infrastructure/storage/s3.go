package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/config"
)

// S3Storage stores proof shots and worksheets in an S3 bucket and hands
// out presigned download URLs.
type S3Storage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucketName    string
	logger        *zap.Logger
}

// NewS3Storage builds an S3 client from static credentials. Endpoint is
// optional and only set for S3-compatible stores.
func NewS3Storage(ctx context.Context, cfg *config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("S3 storage initialized",
		zap.String("region", cfg.Region),
		zap.String("bucket", cfg.BucketName))

	return &S3Storage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucketName:    cfg.BucketName,
		logger:        logger,
	}, nil
}

// Upload writes the object under the given key.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object to s3: %w", err)
	}
	return nil
}

// PresignGet generates a presigned download URL for the key.
func (s *S3Storage) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	result, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return result.URL, nil
}

// Delete removes the object under the key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from s3: %w", err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (s *S3Storage) Bucket() string {
	return s.bucketName
}
