package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp decode support

	"orders_backend/pkg/utils"
)

var (
	// ErrUnsupportedImageType is returned for content types outside the allow-list.
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// MaxUploadSizeBytes is the upload payload ceiling.
const MaxUploadSizeBytes int64 = 10 * 1024 * 1024

// maxBaseNameLen bounds the sanitized part of stored filenames.
const maxBaseNameLen = 40

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// IsAllowedImageType reports whether the content type is on the upload
// allow-list. Matching is case-insensitive.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
}

// --- UploadService Interface ---

// UploadService normalizes uploaded images: every accepted file is re-encoded
// to JPEG and written under the uploads directory.
type UploadService interface {
	SaveImage(fileHeader *multipart.FileHeader) (string, error)
}

type uploadService struct {
	uploadDir string // filesystem directory the files are written to
	urlPrefix string // public URL prefix the directory is served under
}

// NewUploadService creates a new UploadService writing into uploadDir, which
// is created if absent.
func NewUploadService(uploadDir, urlPrefix string) (UploadService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", uploadDir, err)
	}
	return &uploadService{uploadDir: uploadDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// SaveImage validates the upload, applies EXIF auto-rotation, re-encodes to
// JPEG at quality 85 and writes it under a timestamp-prefixed name. It returns
// the public URL path of the stored file.
func (s *uploadService) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if !IsAllowedImageType(fileHeader.Header.Get("Content-Type")) {
		return "", ErrUnsupportedImageType
	}
	if fileHeader.Size > MaxUploadSizeBytes {
		return "", fmt.Errorf("file size exceeds %dMB limit", MaxUploadSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	baseName := utils.SafeBaseName(fileHeader.Filename, maxBaseNameLen)
	fileName := fmt.Sprintf("%d_%s.jpg", time.Now().UnixMilli(), baseName)

	if err := imaging.Save(img, filepath.Join(s.uploadDir, fileName), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return s.urlPrefix + "/" + fileName, nil
}
