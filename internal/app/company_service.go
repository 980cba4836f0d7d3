package app

import (
	"context"
	"strings"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/company"
	"github.com/ousmanseid/job-site-sub000/internal/domain/notification"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
)

// CompanyService covers both sides of the employer registry: the employer's
// own profile and the admin moderation actions on user accounts.
type CompanyService struct {
	companies company.Repository
	users     user.Repository
	notifier  Notifier
}

func NewCompanyService(companies company.Repository, users user.Repository, notifier Notifier) *CompanyService {
	return &CompanyService{companies: companies, users: users, notifier: notifier}
}

func (s *CompanyService) GetProfile(ctx context.Context, p user.Principal) (*company.Company, error) {
	return s.companies.GetByOwner(ctx, p.ID)
}

func (s *CompanyService) UpsertProfile(ctx context.Context, p user.Principal, c company.Company) (*company.Company, error) {
	if p.Role != user.RoleEmployer {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, common.NewValidationError("invalid company profile", map[string]string{"name": "name is required"})
	}
	c.OwnerID = p.ID
	return s.companies.Upsert(ctx, c)
}

// ApproveEmployer is idempotent: approving an already-verified employer is
// a no-op and does not duplicate the notification.
func (s *CompanyService) ApproveEmployer(ctx context.Context, p user.Principal, userID common.UUID) (*user.User, error) {
	if p.Role != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleEmployer {
		return nil, common.NewValidationError("invalid user", map[string]string{"role": "only employers can be verified"})
	}
	if u.Verified {
		return u, nil
	}
	updated, err := s.users.SetVerified(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, userID, notification.TypeEmployerApproved,
		"Account verified", "Your employer account has been verified.")
	return updated, nil
}

// Deactivate flips the account inactive. Already-inactive accounts are left
// alone; open jobs are deliberately not cascade-closed so existing
// applicants stay unaffected.
func (s *CompanyService) Deactivate(ctx context.Context, p user.Principal, userID common.UUID) (*user.User, error) {
	if p.Role != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return u, nil
	}
	updated, err := s.users.SetActive(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if u.Role == user.RoleEmployer {
		s.notifier.Notify(ctx, userID, notification.TypeEmployerDeactivated,
			"Account deactivated", "Your employer account has been deactivated.")
	}
	return updated, nil
}

func (s *CompanyService) Activate(ctx context.Context, p user.Principal, userID common.UUID) (*user.User, error) {
	if p.Role != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Active {
		return u, nil
	}
	return s.users.SetActive(ctx, userID, true)
}

// DeleteUser soft-deletes so that live jobs and applications keep a valid
// reference.
func (s *CompanyService) DeleteUser(ctx context.Context, p user.Principal, userID common.UUID) error {
	if p.Role != user.RoleAdmin {
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.users.SoftDelete(ctx, userID)
}

func (s *CompanyService) ListUsers(ctx context.Context, p user.Principal, role user.Role) ([]user.User, error) {
	if p.Role != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	return s.users.List(ctx, role)
}
