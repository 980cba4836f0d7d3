package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/application"
)

const uniqueViolation = "23505"

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, applicant_id, cv_id, cv_snapshot, cover_letter, status, employer_notes, created_at, updated_at`

// Create relies on the partial unique index over (job_id, applicant_id)
// where status <> 'withdrawn': two concurrent applies produce one row and
// one duplicate_application error.
func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	var snapshot []byte
	if app.CVSnapshot != nil {
		encoded, err := json.Marshal(app.CVSnapshot)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to encode cv snapshot", err)
		}
		snapshot = encoded
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, app.JobID, app.ApplicantID, app.CVID, snapshot, app.CoverLetter, app.Status, app.EmployerNotes, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.NewError(common.CodeDuplicateApplication, "application already exists for this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	var app application.Application
	var cvID sql.NullString
	var snapshot []byte
	if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &cvID, &snapshot, &app.CoverLetter, &app.Status, &app.EmployerNotes, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if err := decorateApplication(&app, cvID, snapshot); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`, applicantID)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT a.id, a.job_id, a.applicant_id, a.cv_id, a.cv_snapshot, a.cover_letter, a.status, a.employer_notes, a.created_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.company_id = $1
		ORDER BY a.created_at DESC`, companyID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var app application.Application
		var cvID sql.NullString
		var snapshot []byte
		if err := rows.Scan(&app.ID, &app.JobID, &app.ApplicantID, &cvID, &snapshot, &app.CoverLetter, &app.Status, &app.EmployerNotes, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		if err := decorateApplication(&app, cvID, snapshot); err != nil {
			return nil, err
		}
		items = append(items, app)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, from, to application.Status, notes string) (bool, error) {
	var result sql.Result
	var err error
	if notes == "" {
		result, err = r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
			to, time.Now().UTC(), id, from)
	} else {
		result, err = r.db.ExecContext(ctx, `UPDATE applications SET status = $1, employer_notes = $2, updated_at = $3 WHERE id = $4 AND status = $5`,
			to, notes, time.Now().UTC(), id, from)
	}
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return rows > 0, nil
}

func decorateApplication(app *application.Application, cvID sql.NullString, snapshot []byte) error {
	if cvID.Valid {
		parsed := common.UUID(cvID.String)
		app.CVID = &parsed
	}
	if len(snapshot) > 0 {
		var decoded application.CVSnapshot
		if err := json.Unmarshal(snapshot, &decoded); err != nil {
			return common.NewError(common.CodeInternal, "failed to decode cv snapshot", err)
		}
		app.CVSnapshot = &decoded
	}
	return nil
}
