package company

import (
	"context"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Repository interface {
	GetByOwner(ctx context.Context, ownerID common.UUID) (*Company, error)
	GetByID(ctx context.Context, id common.UUID) (*Company, error)
	Upsert(ctx context.Context, c Company) (*Company, error)
}
