package user

import (
	"context"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	List(ctx context.Context, role Role) ([]User, error)
	SetVerified(ctx context.Context, id common.UUID, verified bool) (*User, error)
	SetActive(ctx context.Context, id common.UUID, active bool) (*User, error)
	SoftDelete(ctx context.Context, id common.UUID) error
}
