package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const DefaultUploadDir = "./uploads"
const DefaultMaxUploadSizeMB = 5

// UploadInput carries one multipart file as received from the client.
type UploadInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// UploadResult describes a stored file.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// UploadService stores image files on local disk and serves them back
// under a stable public URL prefix.
type UploadService struct {
	uploadDir          string
	maxUploadSizeBytes int64
	now                func() time.Time
}

func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MaxUploadSizeMB
		}
	}

	return &UploadService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		now:                time.Now,
	}
}

// Accept validates and stores an uploaded image, returning its public URL.
// The size limit is enforced before any type inspection so oversized files
// are rejected as too large even when they are not images.
func (s *UploadService) Accept(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Content) == 0 {
		middleware.UploadsTotal.WithLabelValues("empty").Inc()
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		middleware.UploadsTotal.WithLabelValues("too_large").Inc()
		return nil, models.NewTooLargeError(s.maxUploadSizeBytes)
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		middleware.UploadsTotal.WithLabelValues("bad_type").Inc()
		return nil, models.NewUnsupportedTypeError(detectedType)
	}
	if provided := normalizeContentType(in.ContentType); provided != "" {
		if !isAllowedImageMIME(provided) {
			middleware.UploadsTotal.WithLabelValues("bad_type").Inc()
			return nil, models.NewUnsupportedTypeError(provided)
		}
		if !isMatchingContentType(provided, detectedType) {
			middleware.UploadsTotal.WithLabelValues("type_mismatch").Inc()
			return nil, models.NewUnsupportedTypeError(provided)
		}
	}

	name := s.buildStoredName(in.Filename, detectedType)
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), in.Content, 0o644); err != nil {
		middleware.UploadsTotal.WithLabelValues("write_error").Inc()
		return nil, models.NewInternalError(err)
	}

	result := &UploadResult{
		Filename: name,
		URL:      "/uploads/" + name,
		Size:     int64(len(in.Content)),
		MimeType: detectedType,
	}
	// Dimensions are informational; a file that stores fine but does not
	// decode still counts as a successful upload.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Content)); err == nil {
		result.Width = cfg.Width
		result.Height = cfg.Height
	}

	middleware.UploadsTotal.WithLabelValues("success").Inc()
	middleware.UploadBytes.Observe(float64(len(in.Content)))
	return result, nil
}

// buildStoredName derives an on-disk name that cannot collide or escape the
// upload directory. The original name contributes only its extension.
func (s *UploadService) buildStoredName(original, detectedType string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if !isSafeExtension(ext) {
		ext = extensionForMime(detectedType)
	}
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.New().String()[:8], ext)
}

func isAllowedImageMIME(mimeType string) bool {
	switch normalizeContentType(mimeType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func isSafeExtension(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	default:
		return false
	}
}

func extensionForMime(mimeType string) string {
	switch normalizeContentType(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

func normalizeContentType(ct string) string {
	ct = strings.TrimSpace(strings.ToLower(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func isMatchingContentType(provided, detected string) bool {
	if provided == detected {
		return true
	}
	// jpg and jpeg are the same thing
	return (provided == "image/jpg" && detected == "image/jpeg") ||
		(provided == "image/jpeg" && detected == "image/jpg")
}
