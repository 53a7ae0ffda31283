package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
	sc "github.com/lotfi029/FreelancerAssignment/internal/server/config"
)

// Image upload constraints.
const MaxImageSizeBytes = 5 * 1024 * 1024

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ErrInvalidImage rejects uploads outside the allowed extension/size bounds.
var ErrInvalidImage = apperrors.BadRequest("InvalidImage", "The image must be a .jpg, .jpeg or .png file no larger than 5 MB.")

// ImageUpload is an incoming image file as received at the HTTP boundary.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// ImageStore stores product images and serves short-lived download URLs.
type ImageStore interface {
	Upload(ctx context.Context, upload *ImageUpload) (key string, err error)
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// Seams for testing the AWS SDK calls.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3ImageStore keeps product images in an S3-compatible bucket. Objects are
// written by the server; reads go through presigned GET URLs so the bucket
// stays private.
type S3ImageStore struct {
	config *sc.Config
}

func NewS3ImageStore(config *sc.Config) *S3ImageStore {
	return &S3ImageStore{config: config}
}

func (s *S3ImageStore) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// newStorageKey partitions objects by upload date; the UUIDv7 keeps keys
// unique and roughly time-ordered within a day.
func newStorageKey(ext string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	d := time.Now()
	return fmt.Sprintf("products/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), id, ext), nil
}

// Upload validates the file against the extension/size constraints and
// writes it to the bucket, returning the generated object key.
func (s *S3ImageStore) Upload(ctx context.Context, upload *ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok || upload.Size <= 0 || upload.Size > MaxImageSizeBytes {
		return "", ErrInvalidImage
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key, err := newStorageKey(ext)
	if err != nil {
		return "", err
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          upload.Reader,
		ContentLength: aws.Int64(upload.Size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}

// PresignedGetURL returns a download URL for the object, valid 15 minutes.
func (s *S3ImageStore) PresignedGetURL(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
