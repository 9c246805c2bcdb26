package service

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"recipehub/internal/models"
)

// UploadService stores recipe images on local disk and hands back the
// public path they are served from.
type UploadService struct {
	dir        string
	maxSizeMB  int
	allowedExt map[string]bool
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func NewUploadService(dir string, maxSizeMB int) *UploadService {
	return &UploadService{
		dir:       dir,
		maxSizeMB: maxSizeMB,
		allowedExt: map[string]bool{
			".png":  true,
			".jpg":  true,
			".jpeg": true,
			".gif":  true,
		},
	}
}

func (s *UploadService) Dir() string {
	return s.dir
}

// Store validates and writes an uploaded image, returning its public URL
// path. Name collisions get a numeric suffix so existing files are never
// overwritten.
func (s *UploadService) Store(filename string, content []byte) (string, error) {
	if filename == "" {
		return "", models.NewValidationError("No file selected")
	}
	if len(content) == 0 {
		return "", models.NewValidationError("Uploaded file is empty")
	}
	if s.maxSizeMB > 0 && len(content) > s.maxSizeMB*1024*1024 {
		return "", models.NewValidationError(fmt.Sprintf("File exceeds %dMB limit", s.maxSizeMB))
	}

	name := sanitizeFilename(filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !s.allowedExt[ext] {
		return "", models.NewUnsupportedMediaError("File type not allowed (png, jpg, jpeg, gif)")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name, err := s.uniqueName(name)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/uploads/" + name, nil
}

// uniqueName appends -1, -2, ... to the base name until it is free. After
// an unreasonable number of collisions it falls back to a random name.
func (s *UploadService) uniqueName(name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(s.dir, candidate)); os.IsNotExist(err) {
			return candidate, nil
		}
		if i > 1000 {
			return uuid.NewString() + ext, nil
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
}

// sanitizeFilename strips path components and anything outside a
// conservative character set so the name is safe to join onto the
// upload directory.
func sanitizeFilename(filename string) string {
	name := filepath.Base(filepath.Clean(filename))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._-")
	if name == "" {
		name = "upload"
	}
	return name
}
