// Package storage provides S3-backed object storage for inquiry attachments.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// FolderAttachments is the S3 prefix for inquiry attachment objects.
const FolderAttachments = "inquiries"

// Attachment MIME types accepted for upload.
var allowedAttachmentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// S3Config holds S3 client configuration.
type S3Config struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	AttachmentsBucket    string
	PresignExpireMinutes int
}

// S3 issues pre-signed upload URLs for inquiry attachments.
type S3 struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     S3Config
	logger  *zap.Logger
}

// NewS3 creates an S3 client from static credentials when provided, falling
// back to the default credential chain.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if cfg.AttachmentsBucket == "" {
		return nil, fmt.Errorf("attachments bucket not configured")
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	} else {
		logger.Warn("S3 client using default credential chain")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3{
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// ValidateAttachmentType reports whether the content type is accepted.
func ValidateAttachmentType(contentType string) bool {
	_, ok := allowedAttachmentTypes[strings.ToLower(contentType)]
	return ok
}

// AttachmentKey builds an object key under the attachments prefix, keyed by
// a random uuid so uploads cannot collide or be guessed.
func AttachmentKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", FolderAttachments, uuid.New().String(), ext)
}

// PresignUpload returns a pre-signed PUT URL for one attachment object and
// the public object URL recorded on the inquiry after upload.
func (s *S3) PresignUpload(ctx context.Context, key, contentType string) (uploadURL, objectURL string, err error) {
	expire := time.Duration(s.cfg.PresignExpireMinutes) * time.Minute
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AttachmentsBucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expire))
	if err != nil {
		return "", "", fmt.Errorf("presign put: %w", err)
	}
	objectURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AttachmentsBucket, s.cfg.Region, key)
	return req.URL, objectURL, nil
}
