package dto

import (
	"time"

	"skillsense/internal/domain/document"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"file_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	SourceType   string    `json:"source_type"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BatchItemResponse struct {
	FileName string            `json:"file_name"`
	Document *DocumentResponse `json:"document,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func FromDocument(d document.Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		FileName:     d.FileName,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		SourceType:   string(d.Source),
		Status:       string(d.Status),
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func FromDocuments(docs []document.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDocument(d))
	}
	return out
}
