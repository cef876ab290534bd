package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// allowedUploadExtensions whitelists product images and AR model files.
var allowedUploadExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".glb":  true,
	".gltf": true,
}

// UploadedFile describes a stored upload as reported back to the client.
type UploadedFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
}

// UploadService stores product images and AR models under a local directory.
type UploadService struct {
	dir     string
	maxSize int64
}

// NewUploadService creates a new UploadService rooted at dir. Files larger
// than maxSize bytes are rejected.
func NewUploadService(dir string, maxSize int64) *UploadService {
	return &UploadService{dir: dir, maxSize: maxSize}
}

// SaveFile validates and stores one uploaded file under a unique name, and
// returns its public path.
func (s *UploadService) SaveFile(header *multipart.FileHeader) (*UploadedFile, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExtensions[ext] {
		return nil, models.NewValidationError("invalid file type %q: only images and 3D models are allowed", ext)
	}
	if header.Size > s.maxSize {
		return nil, models.NewValidationError("file exceeds the %d byte limit", s.maxSize)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, models.NewUpstreamError("create upload dir", err)
	}

	name := fmt.Sprintf("file-%s%s", uuid.New().String(), ext)
	src, err := header.Open()
	if err != nil {
		return nil, models.NewUpstreamError("open upload", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, models.NewUpstreamError("store upload", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, models.NewUpstreamError("store upload", err)
	}

	return &UploadedFile{
		Filename: name,
		Path:     "/uploads/" + name,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
	}, nil
}
