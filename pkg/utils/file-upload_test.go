package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"
)

func buildUpload(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("slip", "slip.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["slip"][0]
}

func TestReadAndValidateImageUpload(t *testing.T) {
	pngContent := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	data, contentType, err := ReadAndValidateImageUpload(buildUpload(t, pngContent), 1<<20, []string{"image/png", "image/jpeg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("expected image/png, got %s", contentType)
	}
	if !bytes.Equal(data, pngContent) {
		t.Errorf("returned content does not match upload")
	}
}

func TestReadAndValidateImageUploadRejectsWrongType(t *testing.T) {
	if _, _, err := ReadAndValidateImageUpload(buildUpload(t, []byte("just plain text content")), 1<<20, []string{"image/png"}); err == nil {
		t.Error("expected error for non-image upload, but got nil")
	}
}

func TestReadAndValidateImageUploadRejectsTooLarge(t *testing.T) {
	pngContent := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 128)...)
	if _, _, err := ReadAndValidateImageUpload(buildUpload(t, pngContent), 16, []string{"image/png"}); err == nil {
		t.Error("expected error for oversized upload, but got nil")
	}
}
