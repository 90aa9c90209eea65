// Package storage keeps uploaded resumes in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lshigami/hirewise/config"
	"github.com/rs/zerolog/log"
)

type ResumeStore interface {
	// Put uploads data under key. It reports false when storage is disabled.
	Put(ctx context.Context, key, contentType string, data []byte) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

type s3ResumeStore struct {
	client *s3.Client
	bucket string
}

// NewResumeStore builds an S3 client from the S3_* settings. Storage is
// disabled when no bucket is configured.
func NewResumeStore(cfg *config.Config) (ResumeStore, error) {
	if cfg.S3.Bucket == "" {
		log.Warn().Msg("S3_BUCKET is not set, uploaded resumes will not be stored")
		return NoopResumeStore{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})
	log.Info().Str("bucket", cfg.S3.Bucket).Str("endpoint", cfg.S3.Endpoint).Msg("Resume storage enabled")
	return &s3ResumeStore{client: client, bucket: cfg.S3.Bucket}, nil
}

func (s *s3ResumeStore) Put(ctx context.Context, key, contentType string, data []byte) (bool, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return false, fmt.Errorf("failed to put object: %w", err)
	}
	return true, nil
}

func (s *s3ResumeStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

type NoopResumeStore struct{}

func (NoopResumeStore) Put(context.Context, string, string, []byte) (bool, error) { return false, nil }

func (NoopResumeStore) Get(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("resume storage is disabled")
}
