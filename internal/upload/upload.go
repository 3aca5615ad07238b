// Package upload stores user-submitted image files on disk and enforces
// the upload policy for the admin panel.
package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/buehnenwerk/udo-story/internal/uniuri"
)

const (
	// MaxFileSize is the upper bound for a single uploaded image.
	MaxFileSize = 10 * 1024 * 1024

	randomSuffixLen = 8

	dirPerm = 0o755
)

var (
	// ErrSaverNil is returned if the saver pointer is nil.
	ErrSaverNil = errors.New("saver is nil")

	// ErrNoFile is returned if no file was submitted.
	ErrNoFile = errors.New("no file submitted")

	// ErrFileType is returned if the file is not an allowed image type.
	ErrFileType = errors.New("file is not an allowed image type")

	// ErrFileTooLarge is returned if the file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds the maximum upload size")
)

// allowedTypes is the image allow-list, checked against both the file
// extension and the declared content type.
var allowedTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Saver writes uploaded images into a single directory.
type Saver struct {
	dir     string
	maxSize int64
}

// StoredFile describes a file that was written to disk.
type StoredFile struct {
	// Filename is the generated name under the upload directory.
	Filename string

	// OriginalName is the client-supplied file name.
	OriginalName string
}

// NewSaver creates a Saver for the given directory. The directory is
// created if it does not exist.
func NewSaver(dir string) (*Saver, error) {
	if dir == "" {
		return nil, errors.New("upload directory is empty")
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	return &Saver{dir: dir, maxSize: MaxFileSize}, nil
}

// Dir returns the directory files are stored in.
func (s *Saver) Dir() string {
	return s.dir
}

// Save validates the submitted file against the upload policy and writes
// it to the upload directory under a generated name.
func (s *Saver) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	if s == nil {
		return nil, ErrSaverNil
	}

	if fh == nil {
		return nil, ErrNoFile
	}

	if fh.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !allowedTypes[ext] {
		return nil, ErrFileType
	}

	if !allowedContentType(fh.Header.Get("Content-Type")) {
		return nil, ErrFileType
	}

	name := strconv.FormatInt(time.Now().UnixMilli(), 10) +
		"-" + uniuri.NewLen(randomSuffixLen) + "." + ext

	src, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}

	defer func() {
		_ = src.Close()
	}()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file in upload directory")
	}

	if _, err = io.Copy(dst, io.LimitReader(src, s.maxSize)); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())

		return nil, errors.Wrap(err, "failed to write uploaded file")
	}

	if err = dst.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close uploaded file")
	}

	return &StoredFile{Filename: name, OriginalName: fh.Filename}, nil
}

// Remove deletes a stored file by name. A file that is already gone is
// not an error.
func (s *Saver) Remove(name string) error {
	if s == nil {
		return ErrSaverNil
	}

	if name == "" {
		return nil
	}

	// stored names never contain path separators
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove stored file")
	}

	return nil
}

// allowedContentType reports whether the declared MIME type names one of
// the allowed image formats.
func allowedContentType(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	subtype := mediaType
	if idx := strings.LastIndex(mediaType, "/"); idx >= 0 {
		subtype = mediaType[idx+1:]
	}

	return allowedTypes[subtype]
}
