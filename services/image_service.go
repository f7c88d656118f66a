package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SaveRoomImage writes one uploaded image under ./uploads/rooms and returns
// the public path to store in the room's image list.
func SaveRoomImage(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExts[ext] {
		return "", Validationf("only image files are allowed (jpg, jpeg, png, webp)")
	}

	dir := filepath.Join("uploads", "rooms")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := fmt.Sprintf("room-%d%s", time.Now().UnixNano(), ext)
	fullpath := filepath.Join(dir, filename)

	dst, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return "/uploads/rooms/" + filename, nil
}
