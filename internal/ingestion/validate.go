package ingestion

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrEmptyFile    = errors.New("empty file")
	ErrBadFileName  = errors.New("invalid file name")
)

var allowedMimes = map[string]bool{
	MimePlainText: true,
	MimePDF:       true,
	MimeDocx:      true,
}

var mimeByExtension = map[string]string{
	".txt":  MimePlainText,
	".pdf":  MimePDF,
	".docx": MimeDocx,
}

// ValidateUpload gates an upload before any network call is made. Validation
// failures are user errors, never external-service errors.
func ValidateUpload(fileName, mime string, sizeBytes, maxBytes int64) error {
	if strings.TrimSpace(fileName) == "" {
		return ErrBadFileName
	}
	if strings.ContainsAny(fileName, "/\\") {
		return fmt.Errorf("%w: path separators not allowed", ErrBadFileName)
	}
	if sizeBytes <= 0 {
		return ErrEmptyFile
	}
	if maxBytes > 0 && sizeBytes > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, sizeBytes, maxBytes)
	}
	if !allowedMimes[normalizeMime(mime)] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
	return nil
}

// DetectMime resolves a usable MIME type, falling back to the file extension
// when the client sent none or a generic octet-stream.
func DetectMime(fileName, declared string) string {
	m := normalizeMime(declared)
	if m != "" && m != "application/octet-stream" {
		return m
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if mapped, ok := mimeByExtension[ext]; ok {
		return mapped
	}
	return m
}
