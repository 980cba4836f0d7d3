package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, role, verified, active, deleted, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND NOT deleted`, id)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context, role user.Role) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE NOT deleted ORDER BY created_at DESC`
	args := []any{}
	if role != "" {
		query = `SELECT ` + userColumns + ` FROM users WHERE NOT deleted AND role = $1 ORDER BY created_at DESC`
		args = append(args, role)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list users", err)
	}
	defer rows.Close()
	var items []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.Verified, &u.Active, &u.Deleted, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan user", err)
		}
		items = append(items, u)
	}
	return items, nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id common.UUID, verified bool) (*user.User, error) {
	if err := r.setFlag(ctx, id, "verified", verified); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) SetActive(ctx context.Context, id common.UUID, active bool) (*user.User, error) {
	if err := r.setFlag(ctx, id, "active", active); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) setFlag(ctx context.Context, id common.UUID, column string, value bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET `+column+` = $1, updated_at = $2 WHERE id = $3 AND NOT deleted`, value, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET deleted = TRUE, active = FALSE, updated_at = $1 WHERE id = $2 AND NOT deleted`, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.Role, &u.Verified, &u.Active, &u.Deleted, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}
