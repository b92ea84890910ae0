package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillsense/internal/database"
	"skillsense/internal/domain/document"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(ctx context.Context, d document.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (document.Document, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]document.Document, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status document.Status, errMsg string) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresDocumentRepository struct {
	db database.DB
}

func NewPostgresDocumentRepository(db database.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

const documentColumns = `id, user_id, file_name, storage_path, mime_type, size_bytes, source_type, status, COALESCE(error_message, ''), created_at, updated_at`

func (r *PostgresDocumentRepository) Create(ctx context.Context, d document.Document) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO documents (id, user_id, file_name, storage_path, mime_type, size_bytes, source_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.UserID, d.FileName, d.StoragePath, d.MimeType, d.SizeBytes, string(d.Source), string(d.Status),
	)
	return err
}

func (r *PostgresDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (document.Document, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	return scanDocument(row)
}

func (r *PostgresDocumentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]document.Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *PostgresDocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status document.Status, errMsg string) error {
	var msg any
	if errMsg != "" {
		msg = errMsg
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE documents SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`,
		string(status), msg, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *PostgresDocumentRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func scanDocument(row database.Row) (document.Document, error) {
	var d document.Document
	var source, status string
	err := row.Scan(&d.ID, &d.UserID, &d.FileName, &d.StoragePath, &d.MimeType, &d.SizeBytes,
		&source, &status, &d.ErrorMessage, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, ErrDocumentNotFound
		}
		return document.Document{}, err
	}
	d.Source = document.SourceType(source)
	d.Status = document.Status(status)
	return d, nil
}
