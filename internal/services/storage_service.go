// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

var (
	ErrFileTooLarge    = errors.New("file is too large")
	ErrFileType        = errors.New("file type is not allowed")
	ErrInvalidImage    = errors.New("invalid image file")
	unsafeNameChars    = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	productImageFolder = "products"
)

// StorageService stores product images in S3 when AWS credentials are
// configured, otherwise under the local upload directory served at /uploads.
type StorageService struct {
	s3Client  s3iface.S3API
	aws       config.AWSConfig
	uploadDir string
	maxSize   int64
	uploads   store.UploadStore
	clock     utils.Clock
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	IsPublic     bool
}

func NewStorageService(cfg *config.Config, uploads store.UploadStore, clock utils.Clock) (*StorageService, error) {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	svc := &StorageService{
		aws:       cfg.AWS,
		uploadDir: cfg.Server.UploadDir,
		maxSize:   int64(cfg.Server.MaxUploadMB) * 1024 * 1024,
		uploads:   uploads,
		clock:     clock,
	}

	if !cfg.AWS.Enabled() {
		// Local storage for development
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// WithS3Client replaces the S3 client, mainly for tests.
func (s *StorageService) WithS3Client(client s3iface.S3API) *StorageService {
	s.s3Client = client
	return s
}

func (s *StorageService) ProductImageOptions() UploadOptions {
	return UploadOptions{
		Folder:       productImageFolder,
		MaxSize:      s.maxSize,
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		IsPublic:     true,
	}
}

func (s *StorageService) UploadFile(ctx context.Context, file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, header.Size, options.MaxSize)
	}

	if len(options.AllowedTypes) > 0 {
		fileExt := strings.ToLower(filepath.Ext(header.Filename))
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if fileExt == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %q", ErrFileType, fileExt)
		}
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if options.MaxSize > 0 && int64(len(fileBytes)) > options.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, len(fileBytes), options.MaxSize)
	}
	if !isValidImageType(fileBytes) {
		return nil, ErrInvalidImage
	}

	key := generateFileName(header.Filename, options.Folder)
	contentType := http.DetectContentType(fileBytes)

	var result *UploadResult
	if s.s3Client != nil {
		result, err = s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	} else {
		result, err = s.uploadToLocal(fileBytes, key, contentType)
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, header.Filename, result)
	return result, nil
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      "/uploads/" + key,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// record keeps upload metadata when a store is available. Failures only
// lose the metadata, never the file.
func (s *StorageService) record(ctx context.Context, fileName string, result *UploadResult) {
	if s.uploads == nil {
		return
	}
	err := s.uploads.Record(ctx, &models.Upload{
		Key:       result.Key,
		URL:       result.URL,
		FileName:  fileName,
		Size:      result.Size,
		MimeType:  result.MimeType,
		CreatedAt: s.clock.Now(),
	})
	if err != nil && !errors.Is(err, models.ErrStoreUnavailable) {
		logrus.WithError(err).WithField("key", result.Key).Warn("Failed to record upload")
	}
}

// generateFileName prefixes the sanitized original name with a UUID.
func generateFileName(originalName, folder string) string {
	base := filepath.Base(originalName)
	base = unsafeNameChars.ReplaceAllString(strings.ReplaceAll(base, " ", "-"), "")
	if base == "" || base == "." {
		base = "upload"
	}

	filename := fmt.Sprintf("%s-%s", uuid.NewString(), base)
	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}
	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.aws.S3Bucket, s.aws.Region, key)
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	// WebP
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
