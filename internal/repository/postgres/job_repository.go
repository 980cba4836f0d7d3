package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/application"
	"github.com/ousmanseid/job-site-sub000/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, company_id, title, description, requirements, skills, location, job_type, work_mode, salary_min, salary_max, openings, deadline, status, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Requirements, pq.Array(j.Skills), j.Location, j.JobType, j.WorkMode,
		j.SalaryMin, j.SalaryMax, j.Openings, j.Deadline, j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, requirements = $3, skills = $4, location = $5,
		job_type = $6, work_mode = $7, salary_min = $8, salary_max = $9, openings = $10, deadline = $11, updated_at = $12
		WHERE id = $13 AND company_id = $14`,
		j.Title, j.Description, j.Requirements, pq.Array(j.Skills), j.Location, j.JobType, j.WorkMode,
		j.SalaryMin, j.SalaryMax, j.Openings, j.Deadline, j.UpdatedAt, j.ID, j.CompanyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	var j job.Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, pq.Array(&j.Skills), &j.Location, &j.JobType, &j.WorkMode,
		&j.SalaryMin, &j.SalaryMax, &j.Openings, &j.Deadline, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func (r *JobRepository) ListOpen(ctx context.Context, limit, offset int, skills []string) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	args := []any{job.StatusOpen, limit, offset}
	if len(skills) > 0 {
		query = `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 AND skills && $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = []any{job.StatusOpen, pq.Array(skills), limit, offset}
	}
	return r.list(ctx, query, args...)
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

func (r *JobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, pq.Array(&j.Skills), &j.Location, &j.JobType, &j.WorkMode,
			&j.SalaryMin, &j.SalaryMax, &j.Openings, &j.Deadline, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, j)
	}
	return items, nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id common.UUID, from, to job.Status) (bool, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now().UTC(), id, from)
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to update job status", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to update job status", err)
	}
	return rows > 0, nil
}

func (r *JobRepository) DeleteCascade(ctx context.Context, id common.UUID, rejectNote string) ([]common.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	rows, err := tx.QueryContext(ctx, `UPDATE applications SET status = $1, employer_notes = $2, updated_at = $3
		WHERE job_id = $4 AND status NOT IN ($5, $6, $7)
		RETURNING applicant_id`,
		application.StatusRejected, rejectNote, now, id,
		application.StatusAccepted, application.StatusRejected, application.StatusWithdrawn)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to reject applications", err)
	}
	var applicants []common.UUID
	for rows.Next() {
		var applicantID common.UUID
		if err := rows.Scan(&applicantID); err != nil {
			rows.Close()
			return nil, common.NewError(common.CodeInternal, "failed to scan applicant", err)
		}
		applicants = append(applicants, applicantID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to reject applications", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit job delete", err)
	}
	return applicants, nil
}
