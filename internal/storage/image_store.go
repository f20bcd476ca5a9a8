package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrEmptyFilename = errors.New("empty file name")
)

// ImageStore owns the public upload directory. Files written here are
// served back under URLPrefix.
type ImageStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
	randN     func(n int) int
}

// NewImageStore creates dir if needed and returns a store rooted at it.
func NewImageStore(dir, urlPrefix string) (*ImageStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if urlPrefix == "" {
		urlPrefix = "/img"
	}

	return &ImageStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		now:       time.Now,
		randN:     rand.IntN,
	}, nil
}

// Dir returns the directory backing the store.
func (s *ImageStore) Dir() string {
	return s.dir
}

// URLPrefix returns the public path files are served under.
func (s *ImageStore) URLPrefix() string {
	return s.urlPrefix
}

// Save copies src into a new file named <unix-millis>-<random><ext>, where
// ext is taken from originalName, and returns the public URL of the file.
// Content is not inspected.
func (s *ImageStore) Save(src io.Reader, originalName string) (string, error) {
	if originalName == "" {
		return "", ErrEmptyFilename
	}

	name := s.fileName(originalName)
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}

func (s *ImageStore) fileName(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	return fmt.Sprintf("%d-%d%s", s.now().UnixMilli(), s.randN(1_000_000_000), ext)
}

// Handler serves stored files. Mount it under URLPrefix. Directories are
// reported as missing so the upload names cannot be enumerated.
func (s *ImageStore) Handler() http.Handler {
	return http.StripPrefix(s.urlPrefix, http.FileServer(filesOnly{http.Dir(s.dir)}))
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
