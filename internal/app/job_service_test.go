package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/application"
	"github.com/ousmanseid/job-site-sub000/internal/domain/company"
	"github.com/ousmanseid/job-site-sub000/internal/domain/job"
	"github.com/ousmanseid/job-site-sub000/internal/domain/notification"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
)

type jobFixture struct {
	svc       *JobService
	jobs      *fakeJobRepo
	apps      *fakeApplicationRepo
	companies *fakeCompanyRepo
	users     *fakeUserRepo
	notifier  *fakeNotifier

	employer  user.Principal
	admin     user.Principal
	companyID common.UUID
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()

	apps := newFakeApplicationRepo()
	jobs := newFakeJobRepo(apps)
	apps.jobs = jobs
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	notifier := &fakeNotifier{}

	employerID := users.put(user.User{Role: user.RoleEmployer, Verified: true, Active: true})
	companyID := companies.put(company.Company{OwnerID: employerID, Name: "Acme", Verified: true})

	return &jobFixture{
		svc:       NewJobService(jobs, companies, users, notifier),
		jobs:      jobs,
		apps:      apps,
		companies: companies,
		users:     users,
		notifier:  notifier,
		employer:  user.Principal{ID: employerID, Role: user.RoleEmployer},
		admin:     user.Principal{ID: users.put(user.User{Role: user.RoleAdmin, Active: true}), Role: user.RoleAdmin},
		companyID: companyID,
	}
}

func validJob() job.Job {
	return job.Job{
		Title:        "Backend Engineer",
		Description:  "Build services",
		Requirements: "Go experience",
		Location:     "Remote",
		Openings:     2,
		Deadline:     time.Now().Add(72 * time.Hour),
	}
}

func int64ptr(v int64) *int64 { return &v }

func TestCreateJobStartsPendingApproval(t *testing.T) {
	f := newJobFixture(t)

	created, err := f.svc.Create(context.Background(), f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != job.StatusPendingApproval {
		t.Fatalf("status = %s, want pending_approval", created.Status)
	}
	if created.CompanyID != f.companyID {
		t.Fatalf("company = %s, want %s", created.CompanyID, f.companyID)
	}
}

func TestCreateJobRejectsInvertedSalaryRange(t *testing.T) {
	f := newJobFixture(t)
	j := validJob()
	j.SalaryMin = int64ptr(90000)
	j.SalaryMax = int64ptr(60000)

	_, err := f.svc.Create(context.Background(), f.employer, j)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	var cerr *common.Error
	if !errors.As(err, &cerr) || cerr.Fields["salary"] == "" {
		t.Fatalf("missing salary field detail: %v", err)
	}
}

func TestCreateJobRejectsPastDeadline(t *testing.T) {
	f := newJobFixture(t)
	j := validJob()
	j.Deadline = time.Now().Add(-time.Hour)

	_, err := f.svc.Create(context.Background(), f.employer, j)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateJobRequiresCompanyProfile(t *testing.T) {
	f := newJobFixture(t)
	orphan := user.Principal{ID: common.NewUUID(), Role: user.RoleEmployer}

	_, err := f.svc.Create(context.Background(), orphan, validJob())
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateJobRejectsJobSeeker(t *testing.T) {
	f := newJobFixture(t)
	seeker := user.Principal{ID: common.NewUUID(), Role: user.RoleJobSeeker}

	_, err := f.svc.Create(context.Background(), seeker, validJob())
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestApproveOpensPendingJob(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	approved, err := f.svc.Approve(ctx, f.admin, created.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != job.StatusOpen {
		t.Fatalf("status = %s, want open", approved.Status)
	}
	sent := f.notifier.sentTo(f.employer.ID)
	if len(sent) != 1 || sent[0].typ != notification.TypeJobApproved {
		t.Fatalf("notifications = %+v, want one job_approved", sent)
	}
}

func TestApproveRequiresVerifiedEmployer(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	unverifiedID := f.users.put(user.User{Role: user.RoleEmployer, Active: true})
	f.companies.put(company.Company{OwnerID: unverifiedID, Name: "Fresh"})
	owner := user.Principal{ID: unverifiedID, Role: user.RoleEmployer}

	created, err := f.svc.Create(ctx, owner, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = f.svc.Approve(ctx, f.admin, created.ID)
	if !common.Is(err, common.CodeNotVerified) {
		t.Fatalf("err = %v, want not_verified", err)
	}
}

func TestApproveRejectsNonPendingJob(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Approve(ctx, f.admin, created.ID); err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	_, err = f.svc.Approve(ctx, f.admin, created.ID)
	if !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("err = %v, want invalid_transition", err)
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = f.svc.Approve(ctx, f.employer, created.ID)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestRejectNotifiesOwnerWithReason(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rejected, err := f.svc.Reject(ctx, f.admin, created.ID, "needs a salary range")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != job.StatusRejected {
		t.Fatalf("status = %s, want rejected", rejected.Status)
	}
	sent := f.notifier.sentTo(f.employer.ID)
	if len(sent) != 1 || sent[0].typ != notification.TypeJobRejected {
		t.Fatalf("notifications = %+v, want one job_rejected", sent)
	}
	if !strings.Contains(sent[0].message, "needs a salary range") {
		t.Fatalf("reason missing from message: %q", sent[0].message)
	}
}

func TestCloseRequiresOpenJob(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = f.svc.Close(ctx, f.employer, created.ID)
	if !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("close pending err = %v, want invalid_transition", err)
	}

	if _, err := f.svc.Approve(ctx, f.admin, created.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	closed, err := f.svc.Close(ctx, f.employer, created.ID)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if closed.Status != job.StatusClosed {
		t.Fatalf("status = %s, want closed", closed.Status)
	}
}

func TestCloseForbiddenForOtherEmployer(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Approve(ctx, f.admin, created.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	stranger := user.Principal{ID: common.NewUUID(), Role: user.RoleEmployer}
	_, err = f.svc.Close(ctx, stranger, created.ID)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestUpdateEditsContentNotStatus(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	edit := validJob()
	edit.Title = "Senior Backend Engineer"
	updated, err := f.svc.Update(ctx, f.employer, created.ID, edit)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Senior Backend Engineer" {
		t.Fatalf("title = %q", updated.Title)
	}
	if updated.Status != job.StatusPendingApproval {
		t.Fatalf("status = %s, want pending_approval", updated.Status)
	}
}

func TestUpdateRejectsTerminalJob(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Reject(ctx, f.admin, created.ID, ""); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	_, err = f.svc.Update(ctx, f.employer, created.ID, validJob())
	if !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("err = %v, want invalid_transition", err)
	}
}

func TestDeleteRejectsActiveApplications(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Approve(ctx, f.admin, created.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	activeSeeker := common.NewUUID()
	acceptedSeeker := common.NewUUID()
	active, err := f.apps.Create(ctx, application.Application{JobID: created.ID, ApplicantID: activeSeeker, Status: application.StatusSubmitted})
	if err != nil {
		t.Fatalf("seed active application: %v", err)
	}
	accepted, err := f.apps.Create(ctx, application.Application{JobID: created.ID, ApplicantID: acceptedSeeker, Status: application.StatusAccepted})
	if err != nil {
		t.Fatalf("seed accepted application: %v", err)
	}

	if err := f.svc.Delete(ctx, f.employer, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.jobs.GetByID(ctx, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("job still present, err = %v", err)
	}

	got, err := f.apps.GetByID(ctx, active.ID)
	if err != nil {
		t.Fatalf("GetByID active: %v", err)
	}
	if got.Status != application.StatusRejected || got.EmployerNotes != deletedJobNote {
		t.Fatalf("active application = %s/%q, want rejected with note", got.Status, got.EmployerNotes)
	}
	untouched, err := f.apps.GetByID(ctx, accepted.ID)
	if err != nil {
		t.Fatalf("GetByID accepted: %v", err)
	}
	if untouched.Status != application.StatusAccepted {
		t.Fatalf("accepted application moved to %s", untouched.Status)
	}

	if sent := f.notifier.sentTo(activeSeeker); len(sent) != 1 {
		t.Fatalf("active applicant notifications = %d, want 1", len(sent))
	}
	if sent := f.notifier.sentTo(acceptedSeeker); len(sent) != 0 {
		t.Fatalf("accepted applicant notified: %+v", sent)
	}
}

func TestGetOwnedSeesAnyStatus(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.GetOwned(ctx, f.employer, created.ID); err != nil {
		t.Fatalf("owner GetOwned: %v", err)
	}
	if _, err := f.svc.GetOwned(ctx, f.admin, created.ID); err != nil {
		t.Fatalf("admin GetOwned: %v", err)
	}

	stranger := user.Principal{ID: common.NewUUID(), Role: user.RoleEmployer}
	if _, err := f.svc.GetOwned(ctx, stranger, created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("stranger GetOwned err = %v, want forbidden", err)
	}
}

func TestGetHidesNonOpenJobs(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, validJob())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Get(ctx, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("pending job visible publicly")
	}
	if _, err := f.svc.Approve(ctx, f.admin, created.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, err := f.svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("open job not visible: %v", err)
	}
}
