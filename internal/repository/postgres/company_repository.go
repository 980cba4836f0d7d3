package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/company"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `c.id, c.owner_id, c.name, c.description, c.industry, c.location, c.website, u.verified, c.created_at, c.updated_at`

func (r *CompanyRepository) GetByOwner(ctx context.Context, ownerID common.UUID) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies c JOIN users u ON u.id = c.owner_id WHERE c.owner_id = $1`, ownerID)
	return scanCompany(row)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies c JOIN users u ON u.id = c.owner_id WHERE c.id = $1`, id)
	return scanCompany(row)
}

func (r *CompanyRepository) Upsert(ctx context.Context, c company.Company) (*company.Company, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `INSERT INTO companies (id, owner_id, name, description, industry, location, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (owner_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			industry = EXCLUDED.industry,
			location = EXCLUDED.location,
			website = EXCLUDED.website,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		common.NewUUID(), c.OwnerID, c.Name, c.Description, c.Industry, c.Location, c.Website, now)
	var id common.UUID
	if err := row.Scan(&id); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert company", err)
	}
	return r.GetByID(ctx, id)
}

func scanCompany(row *sql.Row) (*company.Company, error) {
	var c company.Company
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Industry, &c.Location, &c.Website, &c.Verified, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return &c, nil
}
