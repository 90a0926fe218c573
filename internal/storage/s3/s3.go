package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	// PublicBaseURL переопределяет адрес, с которого объекты отдаются наружу (например CDN).
	PublicBaseURL string
}

type Client struct {
	api     s3iface.S3API
	bucket  string
	baseURL string
}

func NewClient(cfg Config) (*Client, error) {
	const op = "storage.s3.NewClient"

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}

	// MinIO и другие S3-совместимые хранилища
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		awsConfig.DisableSSL = aws.Bool(!cfg.UseSSL)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create AWS session: %w", op, err)
	}

	return New(s3.New(sess), cfg), nil
}

// New собирает клиента поверх готового API, в тестах туда передается фейк
func New(api s3iface.S3API, cfg Config) *Client {
	return &Client{
		api:     api,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
	}
}

// EnsureBucket создает бакет, если его еще нет
func (c *Client) EnsureBucket(ctx context.Context) error {
	const op = "storage.s3.EnsureBucket"

	_, err := c.api.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err == nil {
		return nil
	}

	if _, err := c.api.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Upload кладет объект по ключу. PutObject всегда перезаписывает существующий объект.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	const op = "storage.s3.Upload"

	rs, ok := body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("%s: failed to read file: %w", op, err)
		}
		rs = bytes.NewReader(data)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   aws.ReadSeekCloser(rs),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.api.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("%s: failed to upload file to S3: %w", op, err)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	const op = "storage.s3.Delete"

	_, err := c.api.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: failed to delete file from S3: %w", op, err)
	}

	return nil
}

func (c *Client) PublicURL(key string) string {
	return c.baseURL + "/" + key
}

func publicBaseURL(cfg Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}

	if cfg.Endpoint != "" && !strings.Contains(cfg.Endpoint, "amazonaws.com") {
		protocol := "http"
		if cfg.UseSSL {
			protocol = "https"
		}
		endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		endpoint = strings.TrimRight(endpoint, "/")

		return fmt.Sprintf("%s://%s/%s", protocol, endpoint, cfg.Bucket)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
}
