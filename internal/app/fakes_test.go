package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/application"
	"github.com/ousmanseid/job-site-sub000/internal/domain/company"
	"github.com/ousmanseid/job-site-sub000/internal/domain/cv"
	"github.com/ousmanseid/job-site-sub000/internal/domain/job"
	"github.com/ousmanseid/job-site-sub000/internal/domain/notification"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
)

type sentNotification struct {
	recipient common.UUID
	typ       notification.Type
	title     string
	message   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, recipientID common.UUID, typ notification.Type, title, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{recipient: recipientID, typ: typ, title: title, message: message})
}

func (f *fakeNotifier) sentTo(recipientID common.UUID) []sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentNotification
	for _, n := range f.sent {
		if n.recipient == recipientID {
			out = append(out, n)
		}
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) put(u user.User) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = common.NewUUID()
	}
	copied := u
	r.users[u.ID] = &copied
	return u.ID
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Deleted {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) List(ctx context.Context, role user.Role) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []user.User
	for _, u := range r.users {
		if u.Deleted {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		items = append(items, *u)
	}
	return items, nil
}

func (r *fakeUserRepo) SetVerified(ctx context.Context, id common.UUID, verified bool) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Deleted {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	u.Verified = verified
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id common.UUID, active bool) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Deleted {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	u.Active = active
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Deleted {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	u.Deleted = true
	u.Active = false
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[common.UUID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[common.UUID]*company.Company)}
}

func (r *fakeCompanyRepo) put(c company.Company) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = common.NewUUID()
	}
	copied := c
	r.companies[c.ID] = &copied
	return c.ID
}

func (r *fakeCompanyRepo) GetByOwner(ctx context.Context, ownerID common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.OwnerID == ownerID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "company not found", nil)
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCompanyRepo) Upsert(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.OwnerID == c.OwnerID {
			existing.Name = c.Name
			existing.Description = c.Description
			existing.Industry = c.Industry
			existing.Location = c.Location
			existing.Website = c.Website
			copied := *existing
			return &copied, nil
		}
	}
	c.ID = common.NewUUID()
	copied := c
	r.companies[c.ID] = &copied
	result := copied
	return &result, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[common.UUID]*job.Job
	apps *fakeApplicationRepo
}

func newFakeJobRepo(apps *fakeApplicationRepo) *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[common.UUID]*job.Job), apps: apps}
}

func (r *fakeJobRepo) put(j job.Job) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID == "" {
		j.ID = common.NewUUID()
	}
	copied := j
	r.jobs[j.ID] = &copied
	return j.ID
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	j.CreatedAt = time.Now().UTC()
	j.UpdatedAt = j.CreatedAt
	copied := j
	r.jobs[j.ID] = &copied
	return &j, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[j.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.Status = existing.Status
	j.CreatedAt = existing.CreatedAt
	j.UpdatedAt = time.Now().UTC()
	copied := j
	r.jobs[j.ID] = &copied
	return &j, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJobRepo) ListOpen(ctx context.Context, limit, offset int, skills []string) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.jobs {
		if j.Status == job.StatusOpen {
			items = append(items, *j)
		}
	}
	sort.Slice(items, func(i, k int) bool { return items[i].CreatedAt.After(items[k].CreatedAt) })
	return items, nil
}

func (r *fakeJobRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			items = append(items, *j)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) UpdateStatus(ctx context.Context, id common.UUID, from, to job.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != from {
		return false, nil
	}
	j.Status = to
	j.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *fakeJobRepo) DeleteCascade(ctx context.Context, id common.UUID, rejectNote string) ([]common.UUID, error) {
	r.mu.Lock()
	if _, ok := r.jobs[id]; !ok {
		r.mu.Unlock()
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.jobs, id)
	r.mu.Unlock()
	return r.apps.rejectAllForJob(id, rejectNote), nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[common.UUID]*application.Application
	jobs *fakeJobRepo
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[common.UUID]*application.Application)}
}

// Create mimics the store's partial unique index: the duplicate check and
// the insert happen under one lock.
func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID && existing.Status != application.StatusWithdrawn {
			return nil, common.NewError(common.CodeDuplicateApplication, "application already exists for this job", nil)
		}
	}
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt
	copied := app
	r.apps[app.ID] = &copied
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	return r.listWhere(func(a *application.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Application, error) {
	jobIDs := make(map[common.UUID]bool)
	if r.jobs != nil {
		r.jobs.mu.Lock()
		for id, j := range r.jobs.jobs {
			if j.CompanyID == companyID {
				jobIDs[id] = true
			}
		}
		r.jobs.mu.Unlock()
	}
	return r.listWhere(func(a *application.Application) bool { return jobIDs[a.JobID] }), nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	return r.listWhere(func(a *application.Application) bool { return a.JobID == jobID }), nil
}

func (r *fakeApplicationRepo) listWhere(match func(*application.Application) bool) []application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, a := range r.apps {
		if match(a) {
			items = append(items, *a)
		}
	}
	sort.Slice(items, func(i, k int) bool { return items[i].CreatedAt.After(items[k].CreatedAt) })
	return items
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, from, to application.Status, notes string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok || app.Status != from {
		return false, nil
	}
	app.Status = to
	if notes != "" {
		app.EmployerNotes = notes
	}
	app.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *fakeApplicationRepo) rejectAllForJob(jobID common.UUID, note string) []common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	var applicants []common.UUID
	for _, a := range r.apps {
		if a.JobID == jobID && !a.Status.Terminal() {
			a.Status = application.StatusRejected
			a.EmployerNotes = note
			applicants = append(applicants, a.ApplicantID)
		}
	}
	return applicants
}

type fakeCVRepo struct {
	mu  sync.Mutex
	cvs map[common.UUID]*cv.CV
}

func newFakeCVRepo() *fakeCVRepo {
	return &fakeCVRepo{cvs: make(map[common.UUID]*cv.CV)}
}

func (r *fakeCVRepo) put(c cv.CV) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = common.NewUUID()
	}
	copied := c
	r.cvs[c.ID] = &copied
	return c.ID
}

// Create mimics the partial unique index over (owner_id) where is_default.
func (r *fakeCVRepo) Create(ctx context.Context, c cv.CV) (*cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.IsDefault {
		for _, existing := range r.cvs {
			if existing.OwnerID == c.OwnerID && existing.IsDefault {
				return nil, common.NewError(common.CodeConflict, "another cv is already the default", nil)
			}
		}
	}
	c.ID = common.NewUUID()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	copied := c
	r.cvs[c.ID] = &copied
	return &c, nil
}

func (r *fakeCVRepo) Update(ctx context.Context, c cv.CV) (*cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.cvs[c.ID]
	if !ok || existing.OwnerID != c.OwnerID {
		return nil, common.NewError(common.CodeNotFound, "cv not found", nil)
	}
	existing.Summary = c.Summary
	existing.Experience = c.Experience
	existing.Education = c.Education
	existing.Skills = c.Skills
	existing.Template = c.Template
	existing.UpdatedAt = time.Now().UTC()
	copied := *existing
	return &copied, nil
}

func (r *fakeCVRepo) GetByID(ctx context.Context, id common.UUID) (*cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cvs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "cv not found", nil)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCVRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []cv.CV
	for _, c := range r.cvs {
		if c.OwnerID == ownerID {
			items = append(items, *c)
		}
	}
	return items, nil
}

func (r *fakeCVRepo) CountByOwner(ctx context.Context, ownerID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.cvs {
		if c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCVRepo) SetDefault(ctx context.Context, id, ownerID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.cvs[id]
	if !ok || target.OwnerID != ownerID {
		return common.NewError(common.CodeNotFound, "cv not found", nil)
	}
	for _, c := range r.cvs {
		if c.OwnerID == ownerID {
			c.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

func (r *fakeCVRepo) Delete(ctx context.Context, id, ownerID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cvs[id]
	if !ok || c.OwnerID != ownerID {
		return common.NewError(common.CodeNotFound, "cv not found", nil)
	}
	delete(r.cvs, id)
	return nil
}

func (r *fakeCVRepo) defaultCount(ownerID common.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.cvs {
		if c.OwnerID == ownerID && c.IsDefault {
			count++
		}
	}
	return count
}

type fakeNotificationRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*notification.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{items: make(map[int64]*notification.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now().UTC()
	copied := n
	r.items[n.ID] = &copied
	return &n, nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID common.UUID) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []notification.Notification
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			items = append(items, *n)
		}
	}
	sort.Slice(items, func(i, k int) bool { return items[i].ID > items[k].ID })
	return items, nil
}

func (r *fakeNotificationRepo) UnreadCount(ctx context.Context, recipientID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.items {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id int64, recipientID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.RecipientID != recipientID {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	n.Read = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}
