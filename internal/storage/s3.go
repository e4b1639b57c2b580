package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures where objects land and how their public URL is built.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	Region    string
	// PublicBaseURL overrides the virtual-hosted bucket URL, e.g. a CDN or a
	// path-style endpoint of an S3 compatible server.
	PublicBaseURL string
}

// ObjectAPI is the part of the S3 client used for deletes.
type ObjectAPI interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Service stores files in Amazon S3 (or compatible APIs).
type S3Service struct {
	client   ObjectAPI
	uploader *manager.Uploader
	opts     S3Options
}

func NewS3Service(client *s3.Client, opts S3Options) (*S3Service, error) {
	return newS3Service(client, manager.NewUploader(client), opts)
}

func newS3Service(client ObjectAPI, uploader *manager.Uploader, opts S3Options) (*S3Service, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	opts.KeyPrefix = strings.Trim(opts.KeyPrefix, "/")
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &S3Service{client: client, uploader: uploader, opts: opts}, nil
}

func (s *S3Service) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(objectKey),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return s.PublicURL(objectKey), nil
}

func (s *S3Service) Delete(ctx context.Context, key string) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectKey, err)
	}
	return nil
}

// PublicURL is the URL an object key is served from.
func (s *S3Service) PublicURL(objectKey string) string {
	if s.opts.PublicBaseURL != "" {
		return s.opts.PublicBaseURL + "/" + objectKey
	}
	region := s.opts.Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, region, objectKey)
}

func (s *S3Service) objectKey(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if s.opts.KeyPrefix == "" {
		return clean, nil
	}
	return s.opts.KeyPrefix + "/" + clean, nil
}

var _ Service = (*S3Service)(nil)
