package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillsense/internal/database"
	"skillsense/internal/domain/organization"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrAlreadyMember        = errors.New("user is already a member")
)

type OrganizationRepository interface {
	Create(ctx context.Context, org organization.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (organization.Organization, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]organization.Organization, error)
	AddMember(ctx context.Context, m organization.Member) error
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]organization.Member, error)
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
	MemberUserIDs(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresOrganizationRepository struct {
	db database.DB
}

func NewPostgresOrganizationRepository(db database.DB) *PostgresOrganizationRepository {
	return &PostgresOrganizationRepository{db: db}
}

func (r *PostgresOrganizationRepository) Create(ctx context.Context, org organization.Organization) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO organizations (id, name, created_by) VALUES ($1, $2, $3)`,
		org.ID, org.Name, org.CreatedBy,
	)
	if err != nil {
		return err
	}

	// The creator joins as admin immediately.
	_, err = tx.Exec(ctx,
		`INSERT INTO organization_members (id, organization_id, user_id, role) VALUES ($1, $2, $3, 'admin')`,
		uuid.New(), org.ID, org.CreatedBy,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, created_by, created_at FROM organizations WHERE id = $1`, id)

	var org organization.Organization
	if err := row.Scan(&org.ID, &org.Name, &org.CreatedBy, &org.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, ErrOrganizationNotFound
		}
		return organization.Organization{}, err
	}
	return org, nil
}

func (r *PostgresOrganizationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]organization.Organization, error) {
	rows, err := r.db.Query(ctx,
		`SELECT o.id, o.name, o.created_by, o.created_at
		 FROM organizations o
		 JOIN organization_members m ON m.organization_id = o.id
		 WHERE m.user_id = $1
		 ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []organization.Organization
	for rows.Next() {
		var org organization.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.CreatedBy, &org.CreatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *PostgresOrganizationRepository) AddMember(ctx context.Context, m organization.Member) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	affected, err := r.db.Exec(ctx,
		`INSERT INTO organization_members (id, organization_id, user_id, role)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (organization_id, user_id) DO NOTHING`,
		m.ID, m.OrganizationID, m.UserID, m.Role,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyMember
	}
	return nil
}

func (r *PostgresOrganizationRepository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]organization.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, organization_id, user_id, role, created_at
		 FROM organization_members WHERE organization_id = $1 ORDER BY created_at ASC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []organization.Member
	for rows.Next() {
		var m organization.Member
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PostgresOrganizationRepository) IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM organization_members WHERE organization_id = $1 AND user_id = $2)`,
		orgID, userID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresOrganizationRepository) MemberUserIDs(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM organization_members WHERE organization_id = $1`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
