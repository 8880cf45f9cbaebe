package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appConfig "github.com/fastygo/planner/internal/config"
)

// ErrNotConfigured is returned when no bucket is set.
var ErrNotConfigured = errors.New("object storage not configured")

// Presigner issues presigned S3 URLs so clients upload attachment blobs directly.
type Presigner struct {
	client   *s3.PresignClient
	bucket   string
	endpoint string
	region   string
	expires  time.Duration
}

// NewPresigner builds an S3 presign client. Path-style addressing is used
// when a custom endpoint (MinIO, localstack) is configured.
func NewPresigner(ctx context.Context, cfg appConfig.S3Config, logger *zap.Logger) (*Presigner, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expires := cfg.PresignExpiry
	if expires <= 0 {
		expires = 15 * time.Minute
	}

	logger.Info("object storage configured", zap.String("bucket", cfg.Bucket), zap.String("endpoint", cfg.Endpoint))
	return &Presigner{
		client:   s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		region:   cfg.Region,
		expires:  expires,
	}, nil
}

// PresignPut returns a URL accepting a single PUT of the object at key.
func (p *Presigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := p.client.PresignPutObject(ctx, input, s3.WithPresignExpires(p.expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignGet returns a temporary download URL for key.
func (p *Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// ObjectURL is the permanent address of key.
func (p *Presigner) ObjectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if p.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", p.endpoint, p.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, escaped)
}
