package app

import (
	"context"
	"strings"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/application"
	"github.com/ousmanseid/job-site-sub000/internal/domain/company"
	"github.com/ousmanseid/job-site-sub000/internal/domain/cv"
	"github.com/ousmanseid/job-site-sub000/internal/domain/job"
	"github.com/ousmanseid/job-site-sub000/internal/domain/notification"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
)

type ApplicationService struct {
	repo      application.Repository
	jobs      job.Repository
	companies company.Repository
	cvs       cv.Repository
	notifier  Notifier
	now       func() time.Time
}

func NewApplicationService(repo application.Repository, jobs job.Repository, companies company.Repository, cvs cv.Repository, notifier Notifier) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, companies: companies, cvs: cvs, notifier: notifier, now: func() time.Time { return time.Now().UTC() }}
}

func (s *ApplicationService) Apply(ctx context.Context, p user.Principal, jobID common.UUID, coverLetter string, cvID *common.UUID) (*application.Application, error) {
	if p.Role != user.RoleJobSeeker {
		return nil, common.NewError(common.CodeForbidden, "only job seekers can apply", nil)
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeJobNotOpen, "job is not open for applications", nil)
	}
	if !j.Deadline.IsZero() && s.now().After(j.Deadline) {
		return nil, common.NewError(common.CodeJobNotOpen, "application deadline has passed", nil)
	}

	app := application.Application{
		JobID:       jobID,
		ApplicantID: p.ID,
		CoverLetter: strings.TrimSpace(coverLetter),
		Status:      application.StatusSubmitted,
	}
	if cvID != nil {
		selected, err := s.cvs.GetByID(ctx, *cvID)
		if err != nil || selected.OwnerID != p.ID {
			return nil, common.NewError(common.CodeInvalidCV, "cv does not belong to applicant", nil)
		}
		app.CVID = cvID
		app.CVSnapshot = snapshotCV(*selected)
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	if owner, err := s.companies.GetByID(ctx, j.CompanyID); err == nil {
		s.notifier.Notify(ctx, owner.OwnerID, notification.TypeApplicationCreated,
			"New application", "A candidate applied to "+j.Title+".")
	}
	return created, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, p user.Principal, applicationID common.UUID, status application.Status, notes string) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.requireJobOwner(ctx, p, j); err != nil {
		return nil, err
	}
	next, err := NormalizeApplicationStatus(status)
	if err != nil {
		return nil, err
	}
	if next == application.StatusWithdrawn {
		return nil, common.NewError(common.CodeForbidden, "only the applicant can withdraw", nil)
	}
	if !app.Status.CanTransition(next) {
		return nil, common.NewError(common.CodeInvalidTransition, "cannot move application from "+string(app.Status)+" to "+string(next), nil)
	}
	ok, err := s.repo.UpdateStatus(ctx, applicationID, app.Status, next, notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(common.CodeInvalidTransition, "application status changed concurrently", nil)
	}
	updated, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, app.ApplicantID, notification.TypeApplicationStatusChanged,
		"Application update", "Your application for "+j.Title+" is now "+string(next)+".")
	return updated, nil
}

// Withdraw is silent: the employer is not notified.
func (s *ApplicationService) Withdraw(ctx context.Context, p user.Principal, applicationID common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != p.ID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another job seeker", nil)
	}
	if app.Status.Terminal() {
		return nil, common.NewError(common.CodeInvalidTransition, "application is already "+string(app.Status), nil)
	}
	ok, err := s.repo.UpdateStatus(ctx, applicationID, app.Status, application.StatusWithdrawn, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(common.CodeInvalidTransition, "application status changed concurrently", nil)
	}
	return s.repo.GetByID(ctx, applicationID)
}

// Get returns an application to its applicant or to the employer owning
// the job it targets.
func (s *ApplicationService) Get(ctx context.Context, p user.Principal, applicationID common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID == p.ID {
		return app, nil
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.requireJobOwner(ctx, p, j); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) ListByApplicant(ctx context.Context, p user.Principal) ([]application.Application, error) {
	return s.repo.ListByApplicant(ctx, p.ID)
}

func (s *ApplicationService) ListByCompany(ctx context.Context, p user.Principal) ([]application.Application, error) {
	c, err := s.companies.GetByOwner(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, c.ID)
}

func (s *ApplicationService) ListByJob(ctx context.Context, p user.Principal, jobID common.UUID) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.requireJobOwner(ctx, p, j); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *ApplicationService) requireJobOwner(ctx context.Context, p user.Principal, j *job.Job) error {
	if p.Role != user.RoleEmployer {
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	owner, err := s.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return err
	}
	if owner.OwnerID != p.ID {
		return common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	return nil
}

func NormalizeApplicationStatus(status application.Status) (application.Status, error) {
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	switch normalized {
	case application.StatusSubmitted, application.StatusShortlisted, application.StatusInterviewScheduled,
		application.StatusAccepted, application.StatusRejected, application.StatusWithdrawn:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid status", map[string]string{"status": "status must be submitted, shortlisted, interview_scheduled, accepted, rejected, or withdrawn"})
	}
}

func snapshotCV(c cv.CV) *application.CVSnapshot {
	return &application.CVSnapshot{
		Kind:       string(c.Kind),
		Summary:    c.Summary,
		Experience: c.Experience,
		Education:  c.Education,
		Skills:     c.Skills,
		Template:   c.Template,
		FileName:   c.FileName,
		FileKey:    c.FileKey,
	}
}
