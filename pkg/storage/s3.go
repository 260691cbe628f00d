package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider selects the S3-compatible storage backend.
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// Config holds S3-compatible storage configuration. It is filled from the
// application config at startup, never read from the environment on a
// per-call basis.
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Wasabi-specific endpoint, e.g. "s3.ap-southeast-1.wasabisys.com"
	WasabiEndpoint string
}

// Store uploads resume objects to an S3-compatible bucket.
type Store struct {
	client *s3.Client
	cfg    Config
}

// NewStore creates a storage client for the configured provider.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	switch cfg.Provider {
	case ProviderWasabi:
		// Wasabi requires a custom endpoint and path-style addressing
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.WasabiEndpoint)
			o.UsePathStyle = true
		})
	default:
		client = s3.NewFromConfig(awsCfg)
	}

	return &Store{client: client, cfg: cfg}, nil
}

// Put uploads an object and returns its public URL.
func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return s.ObjectURL(key), nil
}

// ObjectURL returns the public URL for a stored object.
func (s *Store) ObjectURL(key string) string {
	if s.cfg.Provider == ProviderWasabi {
		return fmt.Sprintf("https://%s/%s/%s", s.cfg.WasabiEndpoint, s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
