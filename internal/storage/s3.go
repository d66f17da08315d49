package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"swarmpost/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/google/uuid"
)

// S3ImageStorage uploads to an S3 bucket with the SDK's multipart
// transfer manager and returns the object's public URL.
type S3ImageStorage struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
	region   string
}

func NewS3ImageStorage(cfg *config.Config) (*S3ImageStorage, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3ImageStorage{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3BucketName,
		region:   cfg.AWSRegion,
	}, nil
}

// Save uploads the payload under "uploads/{uuid}{ext}" and returns
// "https://{bucket}.s3.{region}.amazonaws.com/{key}". No existence
// check after upload, no retry on transient failure.
func (s *S3ImageStorage) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size == 0 {
		return "", ErrEmptyFile
	}

	key := "uploads/" + uuid.New().String() + filepath.Ext(header.Filename)

	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := header.Header.Get("Content-Type"); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
