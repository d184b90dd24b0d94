// Package media stores post attachments in S3-compatible object storage.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

var (
	ErrUpstream         = errors.New("media storage failure")
	ErrUnsupportedMedia = errors.New("media must be an image or a video")
	ErrNotConfigured    = fmt.Errorf("%w: storage not configured", ErrUpstream)
)

type Object struct {
	Key  string
	URL  string
	Kind model.MediaKind
}

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base under which stored keys are publicly readable.
	PublicURL string
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

type S3Store struct {
	api       objectAPI
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, cfg), nil
}

func newS3Store(api objectAPI, cfg Config) *S3Store {
	return &S3Store{
		api:       api,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
		now:       time.Now,
	}
}

func (s *S3Store) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Object, error) {
	kind, err := KindFor(contentType)
	if err != nil {
		return Object{}, err
	}
	key := s.newKey(contentType)
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return Object{}, fmt.Errorf("%w: put %s: %v", ErrUpstream, key, err)
	}
	return Object{Key: key, URL: s.publicURL + "/" + key, Kind: kind}, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUpstream, key, err)
	}
	return nil
}

func (s *S3Store) newKey(contentType string) string {
	now := s.now().UTC()
	ext := ""
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("posts/%04d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.NewString(), ext)
}

// KindFor maps a content type to the media kind it represents.
func KindFor(contentType string) (model.MediaKind, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ErrUnsupportedMedia
	}
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return model.MediaImage, nil
	case strings.HasPrefix(mediaType, "video/"):
		return model.MediaVideo, nil
	}
	return "", ErrUnsupportedMedia
}

func publicBase(cfg Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Disabled is used when no bucket is configured. Uploads fail, deletes are no-ops.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader, int64, string) (Object, error) {
	return Object{}, ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error { return nil }
