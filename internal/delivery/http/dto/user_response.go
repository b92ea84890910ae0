package dto

import (
	"time"

	"skillsense/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	FullName string `json:"full_name,omitempty"`
	Headline string `json:"headline,omitempty"`
	Privacy  string `json:"privacy_level,omitempty"`
}

type MeResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func FromProfile(p user.Profile) ProfileResponse {
	return ProfileResponse{FullName: p.FullName, Headline: p.Headline, Privacy: string(p.Privacy)}
}
