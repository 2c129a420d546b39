package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	BucketProducts        = "products"
	BucketProfilePictures = "profile-pictures"

	// MaxFileSize is the per-file limit.
	MaxFileSize = 5 << 20
	// PublicPrefix is where the upload directory is served.
	PublicPrefix = "/uploads"
)

var (
	ErrUnsupportedType = errors.New("only image files are allowed")
	ErrTooLarge        = errors.New("file too large")
	ErrNoFile          = errors.New("no file uploaded")
)

var allowedExt = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}

var allowedMIME = []string{"image/jpeg", "image/png", "image/gif"}

// Storage keeps uploaded images on the local disk under Dir/<bucket>.
type Storage struct {
	Dir     string
	MaxSize int64
}

func New(dir string) *Storage {
	return &Storage{Dir: dir, MaxSize: MaxFileSize}
}

// Check validates size, extension and sniffed content type without writing.
func (s *Storage) Check(fh *multipart.FileHeader) error {
	if fh == nil {
		return ErrNoFile
	}
	if fh.Size > s.MaxSize {
		return ErrTooLarge
	}
	if !allowedExt[strings.ToLower(filepath.Ext(fh.Filename))] {
		return ErrUnsupportedType
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("detect type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedMIME...) {
		return ErrUnsupportedType
	}
	return nil
}

// Save stores one file and returns its public path.
func (s *Storage) Save(bucket string, fh *multipart.FileHeader) (string, error) {
	if err := s.Check(fh); err != nil {
		return "", err
	}
	return s.write(bucket, fh)
}

// SaveAll checks every file before writing any of them. On a write failure
// the files already written are removed.
func (s *Storage) SaveAll(bucket string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	for _, fh := range files {
		if err := s.Check(fh); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := s.write(bucket, fh)
		if err != nil {
			for _, done := range paths {
				_ = s.Remove(done)
			}
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Remove deletes the file behind a public path returned by Save.
func (s *Storage) Remove(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, PublicPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return fmt.Errorf("not an upload path: %q", publicPath)
	}
	return os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel)))
}

func (s *Storage) write(bucket string, fh *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.Dir, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path.Join(PublicPrefix, bucket, name), nil
}
