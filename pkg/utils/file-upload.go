package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ReadAndValidateImageUpload reads an uploaded file fully into memory and
// validates its type by sniffing the actual content, not the file name.
// Returns the file content and the detected content type.
func ReadAndValidateImageUpload(fileHeader *multipart.FileHeader, maxSize int64, allowedTypes []string) ([]byte, string, error) {
	if fileHeader.Size == 0 {
		return nil, "", fmt.Errorf("file is empty")
	}
	if fileHeader.Size > maxSize {
		return nil, "", fmt.Errorf("file too large: %d bytes", fileHeader.Size)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("file is empty")
	}

	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	contentType := http.DetectContentType(data[:sniffLen])

	allowed := false
	for _, t := range allowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", fmt.Errorf("invalid file type: %s", contentType)
	}

	return data, contentType, nil
}
