package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultDir = "uploads"

// Store keeps uploaded files under a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the upload to disk under a random name. The returned File is
// removed on Close unless Keep was called.
func (s *Store) Save(header *multipart.FileHeader) (*File, error) {
	src, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "create upload file")
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return nil, errors.Wrap(err, "write upload file")
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, errors.Wrap(err, "close upload file")
	}
	return &File{Path: filepath.ToSlash(path)}, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(filepath.FromSlash(path)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove upload")
	}
	return nil
}

// File is an uploaded file scoped to one request.
type File struct {
	Path string
	kept bool
}

// Keep marks the file as owned by a stored record.
func (f *File) Keep() {
	if f != nil {
		f.kept = true
	}
}

// PathOrEmpty returns the path of a possibly missing upload.
func (f *File) PathOrEmpty() string {
	if f == nil {
		return ""
	}
	return f.Path
}

func (f *File) Close() {
	if f == nil || f.kept {
		return
	}
	if err := os.Remove(filepath.FromSlash(f.Path)); err != nil && !os.IsNotExist(err) {
		log.WithError(err).WithField("path", f.Path).Warn("failed to remove upload")
	}
}
