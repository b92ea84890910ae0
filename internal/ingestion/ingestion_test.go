package ingestion

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractText_PlainText(t *testing.T) {
	out, err := ExtractText("text/plain", []byte("Go, PostgreSQL, Redis"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "Go, PostgreSQL, Redis" {
		t.Fatalf("unexpected text: %q", out)
	}
}

func TestExtractText_MimeParameters(t *testing.T) {
	out, err := ExtractText("text/plain; charset=utf-8", []byte("hello"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "hello" {
		t.Fatalf("unexpected text: %q", out)
	}
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("image/png", []byte{1, 2, 3})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		mime     string
		size     int64
		max      int64
		wantErr  error
	}{
		{"ok pdf", "resume.pdf", MimePDF, 1024, 10 << 20, nil},
		{"ok txt", "notes.txt", MimePlainText, 10, 10 << 20, nil},
		{"too large", "resume.pdf", MimePDF, 11 << 20, 10 << 20, ErrFileTooLarge},
		{"empty", "resume.pdf", MimePDF, 0, 10 << 20, ErrEmptyFile},
		{"bad mime", "resume.png", "image/png", 1024, 10 << 20, ErrUnsupportedType},
		{"no name", "  ", MimePDF, 1024, 10 << 20, ErrBadFileName},
		{"path traversal", "../etc/passwd", MimePlainText, 10, 10 << 20, ErrBadFileName},
	}

	for _, tc := range cases {
		err := ValidateUpload(tc.fileName, tc.mime, tc.size, tc.max)
		if tc.wantErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected err: %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestDetectMime(t *testing.T) {
	if got := DetectMime("resume.pdf", ""); got != MimePDF {
		t.Fatalf("expected pdf from extension, got %q", got)
	}
	if got := DetectMime("resume.docx", "application/octet-stream"); got != MimeDocx {
		t.Fatalf("expected docx from extension, got %q", got)
	}
	if got := DetectMime("resume.pdf", "Application/PDF"); got != MimePDF {
		t.Fatalf("expected declared mime normalized, got %q", got)
	}
}

func TestReadAllLimit(t *testing.T) {
	b, err := ReadAllLimit(strings.NewReader("hello"), 10)
	if err != nil || string(b) != "hello" {
		t.Fatalf("unexpected result: %q err=%v", b, err)
	}

	if _, err := ReadAllLimit(strings.NewReader("hello world"), 5); err == nil {
		t.Fatalf("expected limit error")
	}
}
