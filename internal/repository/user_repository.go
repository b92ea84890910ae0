package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillsense/internal/database"
	"skillsense/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		u.ID, u.Email, u.PasswordHash,
	)
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(full_name, ''), COALESCE(headline, ''), privacy_level, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	var privacy string
	if err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Headline, &privacy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	if lvl, ok := user.ParsePrivacyLevel(privacy); ok {
		p.Privacy = lvl
	}
	return p, nil
}

func (r *PostgresUserRepository) UpsertProfile(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Privacy == "" {
		p.Privacy = user.PrivacyPrivate
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, full_name, headline, privacy_level)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET full_name = EXCLUDED.full_name,
		     headline = EXCLUDED.headline,
		     privacy_level = EXCLUDED.privacy_level,
		     updated_at = now()`,
		p.ID, p.UserID, p.FullName, p.Headline, string(p.Privacy),
	)
	if err != nil {
		return user.Profile{}, err
	}
	return r.GetProfile(ctx, p.UserID)
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
