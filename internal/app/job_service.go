package app

import (
	"context"
	"strings"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/company"
	"github.com/ousmanseid/job-site-sub000/internal/domain/job"
	"github.com/ousmanseid/job-site-sub000/internal/domain/notification"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
)

const deletedJobNote = "The position is no longer available."

type JobService struct {
	repo      job.Repository
	companies company.Repository
	users     user.Repository
	notifier  Notifier
	now       func() time.Time
}

func NewJobService(repo job.Repository, companies company.Repository, users user.Repository, notifier Notifier) *JobService {
	return &JobService{repo: repo, companies: companies, users: users, notifier: notifier, now: func() time.Time { return time.Now().UTC() }}
}

// Create drafts a job into pending_approval. An unverified employer may
// draft; the verification gate applies when an admin approves.
func (s *JobService) Create(ctx context.Context, p user.Principal, j job.Job) (*job.Job, error) {
	if p.Role != user.RoleEmployer {
		return nil, common.NewError(common.CodeForbidden, "only employers can post jobs", nil)
	}
	c, err := s.companies.GetByOwner(ctx, p.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "company profile is required", nil)
		}
		return nil, err
	}
	j.CompanyID = c.ID
	if j.Openings == 0 {
		j.Openings = 1
	}
	if err := s.validatePayload(j); err != nil {
		return nil, err
	}
	j.Status = job.StatusPendingApproval
	return s.repo.Create(ctx, j)
}

// Update edits content fields on a pending or open job; it never changes
// status.
func (s *JobService) Update(ctx context.Context, p user.Principal, jobID common.UUID, j job.Job) (*job.Job, error) {
	current, err := s.getOwned(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	if current.Status != job.StatusPendingApproval && current.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeInvalidTransition, "job is "+string(current.Status)+" and can no longer be edited", nil)
	}
	j.ID = current.ID
	j.CompanyID = current.CompanyID
	j.Status = current.Status
	if j.Openings == 0 {
		j.Openings = current.Openings
	}
	if err := s.validatePayload(j); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, j)
}

func (s *JobService) Approve(ctx context.Context, p user.Principal, jobID common.UUID) (*job.Job, error) {
	if p.Role != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusPendingApproval {
		return nil, common.NewError(common.CodeInvalidTransition, "job is "+string(j.Status)+", not pending approval", nil)
	}
	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ctx, c.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.Verified {
		return nil, common.NewError(common.CodeNotVerified, "employer is not verified", nil)
	}
	ok, err := s.repo.UpdateStatus(ctx, jobID, job.StatusPendingApproval, job.StatusOpen)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(common.CodeInvalidTransition, "job status changed concurrently", nil)
	}
	s.notifier.Notify(ctx, c.OwnerID, notification.TypeJobApproved,
		"Job approved", "Your job "+j.Title+" is now open for applications.")
	return s.repo.GetByID(ctx, jobID)
}

func (s *JobService) Reject(ctx context.Context, p user.Principal, jobID common.UUID, reason string) (*job.Job, error) {
	if p.Role != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusPendingApproval {
		return nil, common.NewError(common.CodeInvalidTransition, "job is "+string(j.Status)+", not pending approval", nil)
	}
	ok, err := s.repo.UpdateStatus(ctx, jobID, job.StatusPendingApproval, job.StatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(common.CodeInvalidTransition, "job status changed concurrently", nil)
	}
	message := "Your job " + j.Title + " was rejected."
	if reason = strings.TrimSpace(reason); reason != "" {
		message += " Reason: " + reason
	}
	if c, err := s.companies.GetByID(ctx, j.CompanyID); err == nil {
		s.notifier.Notify(ctx, c.OwnerID, notification.TypeJobRejected, "Job rejected", message)
	}
	return s.repo.GetByID(ctx, jobID)
}

// Close stops new applications; existing applications keep their statuses.
func (s *JobService) Close(ctx context.Context, p user.Principal, jobID common.UUID) (*job.Job, error) {
	j, err := s.getOwned(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeInvalidTransition, "job is "+string(j.Status)+", not open", nil)
	}
	ok, err := s.repo.UpdateStatus(ctx, jobID, job.StatusOpen, job.StatusClosed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(common.CodeInvalidTransition, "job status changed concurrently", nil)
	}
	return s.repo.GetByID(ctx, jobID)
}

// Delete removes the job; every non-terminal application on it is rejected
// with a system note and its applicant notified.
func (s *JobService) Delete(ctx context.Context, p user.Principal, jobID common.UUID) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if p.Role != user.RoleAdmin {
		if err := s.requireOwner(ctx, p, j); err != nil {
			return err
		}
	}
	applicants, err := s.repo.DeleteCascade(ctx, jobID, deletedJobNote)
	if err != nil {
		return err
	}
	for _, applicantID := range applicants {
		s.notifier.Notify(ctx, applicantID, notification.TypeApplicationStatusChanged,
			"Application update", "Your application for "+j.Title+" was rejected: "+deletedJobNote)
	}
	return nil
}

// Get returns a job for public consumption: anything other than an open
// posting reads as not found.
func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return j, nil
}

// GetOwned returns a job in any status to its owning employer or an admin.
func (s *JobService) GetOwned(ctx context.Context, p user.Principal, id common.UUID) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role == user.RoleAdmin {
		return j, nil
	}
	if err := s.requireOwner(ctx, p, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) ListOpen(ctx context.Context, limit, offset int, skills []string) ([]job.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListOpen(ctx, limit, offset, skills)
}

func (s *JobService) ListByEmployer(ctx context.Context, p user.Principal) ([]job.Job, error) {
	c, err := s.companies.GetByOwner(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, c.ID)
}

func (s *JobService) getOwned(ctx context.Context, p user.Principal, jobID common.UUID) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, p, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) requireOwner(ctx context.Context, p user.Principal, j *job.Job) error {
	if p.Role != user.RoleEmployer {
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	c, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return err
	}
	if c.OwnerID != p.ID {
		return common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	return nil
}

func (s *JobService) validatePayload(j job.Job) error {
	fields := map[string]string{}
	if strings.TrimSpace(j.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(j.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(j.Requirements) == "" {
		fields["requirements"] = "requirements are required"
	}
	if strings.TrimSpace(j.Location) == "" {
		fields["location"] = "location is required"
	}
	if j.Openings <= 0 {
		fields["openings"] = "openings must be a positive integer"
	}
	if j.Deadline.IsZero() {
		fields["deadline"] = "deadline is required"
	} else if !j.Deadline.After(s.now()) {
		fields["deadline"] = "deadline must be in the future"
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		fields["salary"] = "salary_min must not exceed salary_max"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job payload", fields)
	}
	return nil
}
