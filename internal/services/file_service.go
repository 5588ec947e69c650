package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FileService spools uploaded files to the temp directory so the ingestion pipelines can read them by path
type FileService struct {
	tempDir string
}

func NewFileService(tempDir string) *FileService {
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		logrus.Warnf("Failed to create temp directory %s: %v", tempDir, err)
	}
	return &FileService{tempDir: tempDir}
}

// SpoolUpload copies the uploaded file under a unique name and returns its path.
// The caller removes the file with Remove once it is done with it.
func (s *FileService) SpoolUpload(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return s.Spool(file, filepath.Ext(fileHeader.Filename))
}

// Spool copies r into a new temp file with the given extension
func (s *FileService) Spool(r io.Reader, ext string) (string, error) {
	filePath := filepath.Join(s.tempDir, "upload-"+uuid.New().String()+ext)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	size, err := io.Copy(dst, r)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}

	logrus.WithFields(logrus.Fields{"path": filePath, "size": size}).Debug("Upload spooled")
	return filePath, nil
}

// Remove deletes a spooled file, logging instead of failing
func (s *FileService) Remove(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Failed to remove temp file %s: %v", filePath, err)
	}
}
