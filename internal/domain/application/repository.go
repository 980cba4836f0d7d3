package application

import (
	"context"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Repository interface {
	// Create inserts the application. A second non-withdrawn application
	// for the same (job, applicant) pair must fail with
	// common.CodeDuplicateApplication; the store enforces this with a
	// partial unique index, not a read-then-write check.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	// UpdateStatus moves the row from one status to another and persists
	// notes. ok=false with a nil error means the row was no longer in the
	// from state, which is how a concurrent loser surfaces.
	UpdateStatus(ctx context.Context, id common.UUID, from, to Status, notes string) (ok bool, err error)
}
