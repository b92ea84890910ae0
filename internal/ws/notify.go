package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"skillsense/internal/domain/document"

	"github.com/google/uuid"
)

// DocumentStatusEvent is pushed whenever a document moves through the
// processing pipeline.
type DocumentStatusEvent struct {
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyDocumentStatus(userID, documentID uuid.UUID, status document.Status) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := DocumentStatusEvent{
		Type:       "document_status",
		UserID:     userID.String(),
		DocumentID: documentID.String(),
		Status:     string(status),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
