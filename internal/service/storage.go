package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/mealtrack-v2/backend/config"
)

// S3PutObjectAPI is the subset of the S3 client used by StorageService
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// StorageService uploads meal photos to object storage
type StorageService struct {
	client S3PutObjectAPI
	bucket string
	now    func() time.Time
}

// NewStorageService creates a new StorageService instance
func NewStorageService(s3Config *config.S3Config) *StorageService {
	return &StorageService{
		client: s3Config.Client,
		bucket: s3Config.BucketName,
		now:    time.Now,
	}
}

// UploadMealImage uploads image bytes under a timestamp-prefixed key and
// returns the public URL. The prefix disambiguates same-named uploads.
func (s *StorageService) UploadMealImage(ctx context.Context, image []byte, fileName, contentType string) (string, error) {
	key := fmt.Sprintf("meal-images/%d-%s", s.now().UnixNano(), sanitizeFileName(fileName))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	log.Printf("[StorageService] Uploaded meal image to %s", publicURL)

	return publicURL, nil
}

// sanitizeFileName keeps only the base name and replaces characters that
// are awkward in object keys.
func sanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "image"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '#', '?', '%':
			return '_'
		}
		return r
	}, base)
}
