package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"school-backend/internal/apperr"
	appconfig "school-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const maxPhotoSize = 5 << 20 // 5 MB

var photoContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// StorageService stores student profile photos either on local disk or in
// an S3-compatible bucket (AWS S3, Cloudflare R2, minio).
type StorageService struct {
	cfg    *appconfig.Config
	s3     *s3.Client
	logger *log.Logger
}

func NewStorageService(cfg *appconfig.Config, logger *log.Logger) (*StorageService, error) {
	svc := &StorageService{cfg: cfg, logger: logger}

	if cfg.Storage.S3.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.Storage.S3.AccessKey, cfg.Storage.S3.SecretKey, "")),
			awsconfig.WithRegion(cfg.Storage.S3.Region),
		)
		if err != nil {
			return nil, fmt.Errorf("configure s3 client: %w", err)
		}
		svc.s3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Storage.S3.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Storage.S3.Endpoint)
			}
		})
		logger.Printf("[Storage] using S3 bucket %s", cfg.Storage.S3.Bucket)
	} else {
		if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
		logger.Printf("[Storage] using local dir %s", cfg.Storage.UploadDir)
	}

	return svc, nil
}

// SavePhoto stores the photo and returns the URL/path to record on the
// student. Only images up to 5 MB are accepted.
func (s *StorageService) SavePhoto(ctx context.Context, studentID, contentType string, size int64, body io.Reader) (string, error) {
	ext, ok := photoContentTypes[contentType]
	if !ok {
		return "", apperr.BadRequest("unsupported image type: %s", contentType)
	}
	if size > maxPhotoSize {
		return "", apperr.BadRequest("image too large (max 5 MB)")
	}

	filename := studentID + "_" + uuid.NewString()[:8] + ext

	if s.s3 != nil {
		key := "students/" + filename
		_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.cfg.Storage.S3.Bucket),
			Key:         aws.String(key),
			Body:        body,
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return "", fmt.Errorf("upload photo: %w", err)
		}
		return key, nil
	}

	path := filepath.Join(s.cfg.Storage.UploadDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(body, maxPhotoSize)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("save photo: %w", err)
	}
	return "/" + strings.ReplaceAll(path, string(filepath.Separator), "/"), nil
}

// OpenPhoto streams a previously stored photo. The caller closes the
// returned body.
func (s *StorageService) OpenPhoto(ctx context.Context, location string) (io.ReadCloser, string, error) {
	if location == "" {
		return nil, "", apperr.NotFound("no photo on file")
	}

	if s.s3 != nil {
		out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.cfg.Storage.S3.Bucket),
			Key:    aws.String(strings.TrimPrefix(location, "/")),
		})
		if err != nil {
			return nil, "", fmt.Errorf("fetch photo: %w", err)
		}
		return out.Body, aws.ToString(out.ContentType), nil
	}

	f, err := os.Open(strings.TrimPrefix(location, "/"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperr.NotFound("photo file missing")
		}
		return nil, "", err
	}
	return f, photoContentType(location), nil
}

func photoContentType(location string) string {
	ext := strings.ToLower(filepath.Ext(location))
	for ct, e := range photoContentTypes {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}

// DeletePhoto removes a previously stored photo. Missing files are not an
// error; the student record is the source of truth.
func (s *StorageService) DeletePhoto(ctx context.Context, location string) error {
	if location == "" {
		return nil
	}

	if s.s3 != nil {
		_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Storage.S3.Bucket),
			Key:    aws.String(strings.TrimPrefix(location, "/")),
		})
		return err
	}

	err := os.Remove(strings.TrimPrefix(location, "/"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
