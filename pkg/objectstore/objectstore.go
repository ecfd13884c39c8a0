package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:generate mockgen -source=objectstore.go -destination=mock/objectstore.go -package=mock_objectstore

// API is the subset of the S3 client the store calls.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Config struct {
	Endpoint      string
	PublicBaseURL string
	Region        string
	AccessKeyID   string
	SecretKey     string
	Bucket        string
	UsePathStyle  bool
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SafeName replaces every character outside [a-zA-Z0-9._-] with an underscore.
func SafeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// Store keeps generated documents in one S3-compatible bucket.
type Store struct {
	api        API
	bucket     string
	publicBase string
}

func New(api API, bucket, publicBaseURL string) *Store {
	return &Store{
		api:        api,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBaseURL, "/"),
	}
}

// NewS3 builds an S3 client with static credentials. A non-empty endpoint
// points the client at an S3-compatible server such as MinIO.
func NewS3(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("objectstore.NewS3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return New(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

// Upload writes data under the sanitized name, replacing any existing object,
// and returns its public URL.
func (s *Store) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := SafeName(name)

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("objectstore.Upload: put %s/%s: %w", s.bucket, key, err)
	}

	return s.PublicURL(key), nil
}

func (s *Store) PublicURL(name string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, url.PathEscape(s.bucket), url.PathEscape(SafeName(name)))
}

func (s *Store) Delete(ctx context.Context, name string) error {
	key := SafeName(name)

	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("objectstore.Delete: %s/%s: %w", s.bucket, key, err)
	}
	return nil
}
