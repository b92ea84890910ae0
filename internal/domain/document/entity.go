package document

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type SourceType string

const (
	SourceCV                SourceType = "cv"
	SourceLinkedIn          SourceType = "linkedin"
	SourceGitHub            SourceType = "github"
	SourceBlog              SourceType = "blog"
	SourcePerformanceReview SourceType = "performance_review"
	SourceOther             SourceType = "other"
)

func ParseSourceType(s string) (SourceType, bool) {
	switch SourceType(strings.ToLower(strings.TrimSpace(s))) {
	case SourceCV:
		return SourceCV, true
	case SourceLinkedIn:
		return SourceLinkedIn, true
	case SourceGitHub:
		return SourceGitHub, true
	case SourceBlog:
		return SourceBlog, true
	case SourcePerformanceReview:
		return SourcePerformanceReview, true
	case SourceOther:
		return SourceOther, true
	default:
		return "", false
	}
}

type Document struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	FileName     string
	StoragePath  string
	MimeType     string
	SizeBytes    int64
	Source       SourceType
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
