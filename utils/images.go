package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SaveImageWithThumb decodes an uploaded image, saves the original under
// dir and a 300px-wide thumbnail under dir/thumb. Returns the stored file
// name.
func SaveImageWithThumb(file *multipart.FileHeader, dir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := GenerateID(16) + ".jpg"
	thumbDir := filepath.Join(dir, "thumb")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(dir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return fileName, nil
}
