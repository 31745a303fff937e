package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"college-chat/internal/extract"
	"college-chat/internal/model"
)

// UploadService keeps uploaded files in one flat directory. Files are keyed
// by their client-supplied base name; a second upload with the same name
// replaces the first.
type UploadService struct {
	dir       string
	urlPrefix string
}

func NewUploadService(dir, urlPrefix string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadService{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *UploadService) Dir() string { return s.dir }

// Ingest writes r under name and returns the stored name and extracted
// text. Unsupported types are rejected before anything is written, and the
// file is removed again when extraction fails.
func (s *UploadService) Ingest(name string, r io.Reader) (string, string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", "", err
	}
	if !extract.Supported(name) {
		return name, "", fmt.Errorf("%w: %q", extract.ErrUnsupportedType, strings.ToLower(filepath.Ext(name)))
	}
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return name, "", fmt.Errorf("save upload: %w", err)
	}
	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return name, "", fmt.Errorf("save upload: %w", err)
	}

	text, err := extract.File(dst, name)
	if err != nil {
		os.Remove(dst)
		if errors.Is(err, extract.ErrUnsupportedType) {
			return name, "", err
		}
		return name, "", fmt.Errorf("failed to process file: %w", err)
	}
	return name, text, nil
}

func (s *UploadService) List() ([]model.UploadedFile, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.UploadedFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]model.UploadedFile, 0, len(names))
	for i, n := range names {
		files = append(files, model.UploadedFile{ID: i + 1, Name: n, URL: s.URL(n)})
	}
	return files, nil
}

func (s *UploadService) Delete(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return ErrFileNotFound
	}
	err = os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrFileNotFound
	}
	if err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

func (s *UploadService) URL(name string) string {
	return s.urlPrefix + "/" + url.PathEscape(name)
}

// cleanName strips any directory part a client may have sent.
func cleanName(name string) (string, error) {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." || strings.TrimSpace(name) == "" {
		return "", ErrInvalidName
	}
	return name, nil
}
