// Package upload stores multipart uploads on local disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file exceeds size limit")
	ErrFileNotFound     = errors.New("file not found")
)

// ImageExtensions is the set accepted for avatars and publication media.
var ImageExtensions = []string{"png", "jpg", "jpeg", "gif"}

type Store struct {
	dir     string
	prefix  string
	maxSize int64
	allowed map[string]struct{}
}

type File struct {
	Name         string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

func NewStore(dir, prefix string, maxSize int64, extensions ...string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s failed: %w", dir, err)
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Store{
		dir:     dir,
		prefix:  prefix,
		maxSize: maxSize,
		allowed: allowed,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// Save writes r to a temporary file, validates it and moves it under a
// generated name. The temporary file never outlives a failed call.
func (s *Store) Save(originalName string, r io.Reader) (_ *File, err error) {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file failed: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, io.LimitReader(r, s.maxSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("write upload failed: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if _, ok := s.allowed[ext]; !ok {
		return nil, ErrInvalidExtension
	}
	if written > s.maxSize {
		return nil, ErrFileTooLarge
	}

	name := fmt.Sprintf("%s-%d-%s.%s", s.prefix, time.Now().UnixMilli(), uuid.NewString(), ext)
	if err = os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		return nil, fmt.Errorf("store upload failed: %w", err)
	}

	return &File{
		Name:         name,
		OriginalName: filepath.Base(originalName),
		MimeType:     mime.TypeByExtension("." + ext),
		Size:         written,
	}, nil
}

// Path resolves a stored file name to its location on disk.
func (s *Store) Path(name string) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || strings.HasPrefix(base, ".") {
		return "", ErrFileNotFound
	}
	path := filepath.Join(s.dir, base)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrFileNotFound
		}
		return "", fmt.Errorf("stat upload failed: %w", err)
	}
	if info.IsDir() {
		return "", ErrFileNotFound
	}
	return path, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(name string) error {
	base := filepath.Base(name)
	if base == "." || strings.HasPrefix(base, ".") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, base)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload failed: %w", err)
	}
	return nil
}
