package service

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"medconnect/internal/config"
	"medconnect/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultUploadDir       = "uploads"
	DefaultUploadMaxSizeMB = 5

	// UploadURLPrefix is where saved files are served from.
	UploadURLPrefix = "/uploads/"
)

var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// UploadService stores user images on local disk.
type UploadService struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(cfg *config.Config) *UploadService {
	dir := DefaultUploadDir
	maxBytes := int64(DefaultUploadMaxSizeMB) * 1024 * 1024
	if cfg != nil {
		if cfg.UploadDir != "" {
			dir = cfg.UploadDir
		}
		if cfg.UploadMaxBytes() > 0 {
			maxBytes = cfg.UploadMaxBytes()
		}
	}
	return &UploadService{dir: dir, maxBytes: maxBytes, now: time.Now}
}

// Dir is the directory files are written to.
func (s *UploadService) Dir() string { return s.dir }

// Save writes r under a generated name and returns its public path,
// "/uploads/<unix-millis>-<uuid8><ext>".
func (s *UploadService) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return "", models.NewValidationError("Only jpg, jpeg, png, gif and webp images are allowed")
	}

	content, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", models.NewValidationError("Could not read uploaded file")
	}
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}
	if !strings.HasPrefix(http.DetectContentType(content), "image/") {
		return "", models.NewValidationError("Invalid image type")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", models.NewInternalError(fmt.Errorf("create upload dir: %w", err))
	}
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", models.NewInternalError(fmt.Errorf("write upload: %w", err))
	}
	return UploadURLPrefix + name, nil
}

// Remove deletes a file previously returned by Save. Unknown paths are ignored.
func (s *UploadService) Remove(publicPath string) error {
	name := strings.TrimPrefix(publicPath, UploadURLPrefix)
	if name == publicPath || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
