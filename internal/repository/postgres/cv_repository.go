package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/cv"
)

type CVRepository struct {
	db *sql.DB
}

func NewCVRepository(db *sql.DB) *CVRepository {
	return &CVRepository{db: db}
}

const cvColumns = `id, owner_id, kind, summary, experience, education, skills, template, file_name, file_key, file_size, mime_type, is_default, created_at, updated_at`

func (r *CVRepository) Create(ctx context.Context, c cv.CV) (*cv.CV, error) {
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO cvs (`+cvColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		c.ID, c.OwnerID, c.Kind, c.Summary, c.Experience, c.Education, pq.Array(c.Skills), c.Template,
		c.FileName, c.FileKey, c.FileSize, c.MimeType, c.IsDefault, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.NewError(common.CodeConflict, "another cv is already the default", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create cv", err)
	}
	return &c, nil
}

func (r *CVRepository) Update(ctx context.Context, c cv.CV) (*cv.CV, error) {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE cvs SET summary = $1, experience = $2, education = $3, skills = $4, template = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8`,
		c.Summary, c.Experience, c.Education, pq.Array(c.Skills), c.Template, c.UpdatedAt, c.ID, c.OwnerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update cv", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "cv not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CVRepository) GetByID(ctx context.Context, id common.UUID) (*cv.CV, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id)
	var c cv.CV
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Kind, &c.Summary, &c.Experience, &c.Education, pq.Array(&c.Skills), &c.Template,
		&c.FileName, &c.FileKey, &c.FileSize, &c.MimeType, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "cv not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load cv", err)
	}
	return &c, nil
}

func (r *CVRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]cv.CV, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+cvColumns+` FROM cvs WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list cvs", err)
	}
	defer rows.Close()
	var items []cv.CV
	for rows.Next() {
		var c cv.CV
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Kind, &c.Summary, &c.Experience, &c.Education, pq.Array(&c.Skills), &c.Template,
			&c.FileName, &c.FileKey, &c.FileSize, &c.MimeType, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan cv", err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *CVRepository) CountByOwner(ctx context.Context, ownerID common.UUID) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cvs WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count cvs", err)
	}
	return count, nil
}

// SetDefault clears and sets the flag in one transaction so concurrent
// calls cannot leave the owner with zero or two defaults.
func (r *CVRepository) SetDefault(ctx context.Context, id, ownerID common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `UPDATE cvs SET is_default = FALSE, updated_at = $1 WHERE owner_id = $2 AND is_default`, now, ownerID); err != nil {
		return common.NewError(common.CodeInternal, "failed to clear default cv", err)
	}
	result, err := tx.ExecContext(ctx, `UPDATE cvs SET is_default = TRUE, updated_at = $1 WHERE id = $2 AND owner_id = $3`, now, id, ownerID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to set default cv", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "cv not found", sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit default cv", err)
	}
	return nil
}

func (r *CVRepository) Delete(ctx context.Context, id, ownerID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cvs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete cv", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "cv not found", sql.ErrNoRows)
	}
	return nil
}
