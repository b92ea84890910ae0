package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePlainText = "text/plain"
	MimePDF       = "application/pdf"
	MimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedType = fmt.Errorf("unsupported file type")

// ExtractText decodes an uploaded document into plain text, switching on the
// declared MIME type.
func ExtractText(mime string, data []byte) (string, error) {
	switch normalizeMime(mime) {
	case MimePlainText:
		return string(data), nil
	case MimePDF:
		return extractPDFText(data)
	case MimeDocx:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func normalizeMime(mime string) string {
	mime = strings.TrimSpace(strings.ToLower(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// ReadAllLimit reads at most limit bytes and fails when the source exceeds
// it, so oversized uploads never buffer fully in memory.
func ReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("input exceeds %d bytes", limit)
	}
	return b, nil
}
