package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	appconfig "skillsense/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Client stores raw uploaded files in S3-compatible buckets (AWS S3, R2,
// MinIO). Keys follow the {userID}/{timestamp}_{filename} convention.
type Client struct {
	s3             *s3.Client
	resumeBucket   string
	documentBucket string
}

func New(ctx context.Context, cfg appconfig.StorageConfig) (*Client, error) {
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("storage credentials not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if strings.TrimSpace(cfg.Endpoint) != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:             client,
		resumeBucket:   cfg.ResumeBucket,
		documentBucket: cfg.DocumentBucket,
	}, nil
}

// ObjectKey builds the canonical storage path for an upload.
func ObjectKey(userID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/%d_%s", userID, time.Now().UnixNano(), fileName)
}

func (c *Client) PutResume(ctx context.Context, key, contentType string, data []byte) error {
	return c.put(ctx, c.resumeBucket, key, contentType, data)
}

func (c *Client) GetResume(ctx context.Context, key string) ([]byte, error) {
	return c.get(ctx, c.resumeBucket, key)
}

func (c *Client) PutDocument(ctx context.Context, key, contentType string, data []byte) error {
	return c.put(ctx, c.documentBucket, key, contentType, data)
}

func (c *Client) GetDocument(ctx context.Context, key string) ([]byte, error) {
	return c.get(ctx, c.documentBucket, key)
}

func (c *Client) DeleteResume(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.resumeBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (c *Client) put(ctx context.Context, bucket, key, contentType string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body: %w", err)
	}
	return b, nil
}
