package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grocerease/backend/config"
	"github.com/grocerease/backend/internal/logger"
)

// ObjectPutter is the part of the S3 client the image service needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageService handles recipe image storage
type ImageService struct {
	client ObjectPutter
	bucket string
	region string
}

// NewImageService creates an ImageService on top of the configured bucket.
// A nil config yields a service whose uploads fail with
// ErrStorageNotConfigured.
func NewImageService(s3Config *config.S3Config) *ImageService {
	if s3Config == nil {
		return &ImageService{}
	}
	return NewImageServiceWithClient(s3Config.Client, s3Config.BucketName, s3Config.Region)
}

func NewImageServiceWithClient(client ObjectPutter, bucket, region string) *ImageService {
	return &ImageService{client: client, bucket: bucket, region: region}
}

// UploadRecipeImage stores image data under the recipe's prefix and returns
// its public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", ErrStorageNotConfigured
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, contentType)
	}

	key := fmt.Sprintf("recipe-images/%s/%s%s", recipeID, uuid.New(), ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	logger.Info("uploaded recipe image", zap.String("recipe_id", recipeID.String()), zap.String("url", url))
	return url, nil
}
