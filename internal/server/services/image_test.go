package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/lotfi029/FreelancerAssignment/internal/server/config"
)

func newImageStoreForTest() *S3ImageStore {
	return NewS3ImageStore(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "product-images",
	})
}

func stubAWSSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := putObject
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		putObject = origPut
		presignGetObject = origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestUpload_RejectsInvalidFiles(t *testing.T) {
	store := newImageStoreForTest()

	cases := []struct {
		name     string
		filename string
		size     int64
	}{
		{"bad extension", "cat.gif", 100},
		{"no extension", "cat", 100},
		{"too large", "cat.png", MaxImageSizeBytes + 1},
		{"empty", "cat.jpg", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upload := &ImageUpload{Filename: tc.filename, Size: tc.size, Reader: strings.NewReader("x")}
			_, err := store.Upload(context.Background(), upload)
			if !errors.Is(err, ErrInvalidImage) {
				t.Fatalf("want InvalidImage, got %v", err)
			}
		})
	}
}

func TestUpload_Success(t *testing.T) {
	stubAWSSeams(t)
	store := newImageStoreForTest()

	var captured *s3.PutObjectInput
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		captured = in
		return &s3.PutObjectOutput{}, nil
	}

	upload := &ImageUpload{Filename: "Photo.JPG", Size: 42, Reader: strings.NewReader("fake-bytes")}
	key, err := store.Upload(context.Background(), upload)
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	keyPattern := regexp.MustCompile(`^products/\d{4}/\d{1,2}/\d{1,2}/[0-9a-f-]{36}\.jpg$`)
	if !keyPattern.MatchString(key) {
		t.Fatalf("unexpected key layout: %q", key)
	}
	if captured == nil {
		t.Fatal("PutObject never called")
	}
	if aws.ToString(captured.Bucket) != "product-images" || aws.ToString(captured.Key) != key {
		t.Fatalf("bucket/key mismatch: %q %q", aws.ToString(captured.Bucket), aws.ToString(captured.Key))
	}
	if aws.ToString(captured.ContentType) != "image/jpeg" {
		t.Fatalf("content type: %q", aws.ToString(captured.ContentType))
	}
	if aws.ToInt64(captured.ContentLength) != 42 {
		t.Fatalf("content length: %d", aws.ToInt64(captured.ContentLength))
	}
}

func TestUpload_PutObjectError(t *testing.T) {
	stubAWSSeams(t)
	store := newImageStoreForTest()

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("put-fail")
	}

	upload := &ImageUpload{Filename: "a.png", Size: 1, Reader: strings.NewReader("x")}
	if _, err := store.Upload(context.Background(), upload); err == nil || err.Error() != "put-fail" {
		t.Fatalf("expected put-fail, got %v", err)
	}
}

func TestUpload_ConfigLoadError(t *testing.T) {
	stubAWSSeams(t)
	store := newImageStoreForTest()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	upload := &ImageUpload{Filename: "a.png", Size: 1, Reader: strings.NewReader("x")}
	if _, err := store.Upload(context.Background(), upload); err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v", err)
	}
}

func TestPresignedGetURL(t *testing.T) {
	stubAWSSeams(t)
	store := newImageStoreForTest()

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if aws.ToString(in.Bucket) != "product-images" || aws.ToString(in.Key) != "products/k.png" {
			t.Fatalf("bucket/key mismatch: %q %q", aws.ToString(in.Bucket), aws.ToString(in.Key))
		}
		var opts s3.PresignOptions
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.Expires != 15*time.Minute {
			t.Fatalf("expiry: %v", opts.Expires)
		}
		return &v4.PresignedHTTPRequest{URL: "https://signed.test/products/k.png"}, nil
	}

	url, err := store.PresignedGetURL(context.Background(), "products/k.png")
	if err != nil || url != "https://signed.test/products/k.png" {
		t.Fatalf("PresignedGetURL: %q %v", url, err)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}
	if _, err := store.PresignedGetURL(context.Background(), "products/k.png"); err == nil || err.Error() != "sign-fail" {
		t.Fatalf("expected sign-fail, got %v", err)
	}
}
