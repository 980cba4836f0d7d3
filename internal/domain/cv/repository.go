package cv

import (
	"context"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Repository interface {
	Create(ctx context.Context, c CV) (*CV, error)
	Update(ctx context.Context, c CV) (*CV, error)
	GetByID(ctx context.Context, id common.UUID) (*CV, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]CV, error)
	CountByOwner(ctx context.Context, ownerID common.UUID) (int, error)
	// SetDefault clears the default flag on every CV owned by ownerID and
	// sets it on id, as one transaction.
	SetDefault(ctx context.Context, id, ownerID common.UUID) error
	Delete(ctx context.Context, id, ownerID common.UUID) error
}
