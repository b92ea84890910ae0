package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PrivacyLevel string

const (
	PrivacyPublic   PrivacyLevel = "public"
	PrivacyInternal PrivacyLevel = "internal"
	PrivacyPrivate  PrivacyLevel = "private"
)

func ParsePrivacyLevel(s string) (PrivacyLevel, bool) {
	switch PrivacyLevel(strings.ToLower(strings.TrimSpace(s))) {
	case PrivacyPublic:
		return PrivacyPublic, true
	case PrivacyInternal:
		return PrivacyInternal, true
	case PrivacyPrivate:
		return PrivacyPrivate, true
	default:
		return "", false
	}
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FullName  string
	Headline  string
	Privacy   PrivacyLevel
	CreatedAt time.Time
	UpdatedAt time.Time
}
