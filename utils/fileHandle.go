package utils

import (
	"coursehub/models"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded section file under destDir with a
// generated name and returns the reference persisted on the section.
// The original filename is kept for display only.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (models.SectionFile, error) {
	src, err := file.Open()
	if err != nil {
		return models.SectionFile{}, err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return models.SectionFile{}, err
	}

	storedName := uuid.New().String() + filepath.Ext(file.Filename)
	filePath := filepath.Join(destDir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return models.SectionFile{}, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return models.SectionFile{}, err
	}

	return models.SectionFile{
		Filename: file.Filename,
		Path:     "/uploads/" + storedName,
	}, nil
}
