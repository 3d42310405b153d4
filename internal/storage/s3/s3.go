// Package s3 реализует объектное хранилище медиафайлов поверх
// S3-совместимого сервиса (AWS S3, MinIO и др.).
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magabrotheeeer/profile-platform/internal/config"
)

// Storage описывает операции с медиафайлами анкет.
type Storage interface {
	// Save сохраняет файл по указанному ключу.
	Save(ctx context.Context, key string, file io.Reader) error
	// Delete удаляет файл по ключу.
	Delete(ctx context.Context, key string) error
	// PublicURL возвращает публичный URL файла.
	PublicURL(key string) string
}

// Client реализует Storage поверх S3-совместимого API.
type Client struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// New создаёт клиент объектного хранилища из конфигурации приложения.
func New(ctx context.Context, cfg config.S3Storage) (*Client, error) {
	const op = "s3.New"

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style требуется для MinIO и части S3-совместимых сервисов.
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	publicURL := cfg.Endpoint
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	} else {
		publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &Client{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

// Save сохраняет файл в хранилище.
func (c *Client) Save(ctx context.Context, key string, file io.Reader) error {
	const op = "s3.Save"
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет файл из хранилища.
func (c *Client) Delete(ctx context.Context, key string) error {
	const op = "s3.Delete"
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PublicURL возвращает публичный URL файла по его ключу.
func (c *Client) PublicURL(key string) string {
	return c.publicURL + "/" + strings.TrimPrefix(key, "/")
}
