package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// StorageService keeps uploaded resume PDFs on local disk so an import can
// be parsed and later removed together with its resume.
type StorageService interface {
	SaveFile(file *multipart.FileHeader) (filename string, path string, err error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

var (
	ErrUnsupportedFile = errors.New("only PDF resumes can be uploaded")
	ErrFileTooLarge    = errors.New("resume file is too large")
)

const sniffLen = 3072

type diskResumeStore struct {
	dir     string
	maxSize int64
}

// NewStorageService stores resumes under dir. maxSize <= 0 disables the
// size cap.
func NewStorageService(dir string, maxSize int64) StorageService {
	return &diskResumeStore{dir: dir, maxSize: maxSize}
}

func (s *diskResumeStore) EnsureUploadDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// SaveFile accepts the upload only when its bytes are a PDF, whatever the
// client named it. The file becomes visible under its final name only once
// fully written.
func (s *diskResumeStore) SaveFile(file *multipart.FileHeader) (string, string, error) {
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", "", fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, file.Size, s.maxSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	head = head[:n]
	if kind := mimetype.Detect(head); !kind.Is("application/pdf") {
		return "", "", fmt.Errorf("%w: %s looks like %s", ErrUnsupportedFile, filepath.Base(file.Filename), kind.String())
	}

	filename := "resume_" + uuid.NewString() + ".pdf"
	path := filepath.Join(s.dir, filename)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := io.Copy(tmp, io.MultiReader(bytes.NewReader(head), src)); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}
	committed = true
	return filename, path, nil
}

// GetFilePath drops any directory part so stored names cannot escape dir.
func (s *diskResumeStore) GetFilePath(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

func (s *diskResumeStore) DeleteFile(filename string) error {
	err := os.Remove(s.GetFilePath(filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
