package usecase

import (
	"context"
	"errors"
	"strings"

	"skillsense/internal/domain/user"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	FullName string
	Headline string
	Privacy  string
}

type UserUsecase interface {
	Me(ctx context.Context, userID uuid.UUID) (user.User, user.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error)
}

type User struct {
	users user.Repository
}

func NewUserUsecase(users user.Repository) *User {
	return &User{users: users}
}

func (u *User) Me(ctx context.Context, userID uuid.UUID) (user.User, user.Profile, error) {
	if userID == uuid.Nil {
		return user.User{}, user.Profile{}, ErrUnauthorized
	}
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.Profile{}, ErrUnauthorized
		}
		return user.User{}, user.Profile{}, ErrInternal
	}
	usr.PasswordHash = ""

	profile, err := u.users.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return user.User{}, user.Profile{}, ErrInternal
	}
	return usr, profile, nil
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	privacy := user.PrivacyPrivate
	if in.Privacy != "" {
		lvl, ok := user.ParsePrivacyLevel(in.Privacy)
		if !ok {
			return user.Profile{}, ErrInvalidInput
		}
		privacy = lvl
	}

	existing, err := u.users.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return user.Profile{}, ErrInternal
	}

	p := user.Profile{
		ID:       existing.ID,
		UserID:   userID,
		FullName: strings.TrimSpace(in.FullName),
		Headline: strings.TrimSpace(in.Headline),
		Privacy:  privacy,
	}
	updated, err := u.users.UpsertProfile(ctx, p)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return updated, nil
}
