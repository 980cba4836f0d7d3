package job

import (
	"context"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListOpen(ctx context.Context, limit, offset int, skills []string) ([]Job, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Job, error)
	// UpdateStatus performs a compare-and-swap on the status column and
	// reports whether the row moved. ok=false with a nil error means the
	// job was not in the expected state.
	UpdateStatus(ctx context.Context, id common.UUID, from, to Status) (ok bool, err error)
	// DeleteCascade removes the job and, in the same transaction, moves
	// every non-terminal application on it to rejected with the given
	// note. It returns the applicant IDs that were affected.
	DeleteCascade(ctx context.Context, id common.UUID, rejectNote string) ([]common.UUID, error)
}
