package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/app"
	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/job"
	"github.com/ousmanseid/job-site-sub000/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Skills       []string `json:"skills"`
	Location     string   `json:"location"`
	JobType      string   `json:"job_type"`
	WorkMode     string   `json:"work_mode"`
	SalaryMin    *int64   `json:"salary_min"`
	SalaryMax    *int64   `json:"salary_max"`
	Openings     int      `json:"openings"`
	Deadline     string   `json:"deadline"`
}

func (p jobPayload) toJob() (job.Job, error) {
	j := job.Job{
		Title:        p.Title,
		Description:  p.Description,
		Requirements: p.Requirements,
		Skills:       p.Skills,
		Location:     p.Location,
		JobType:      p.JobType,
		WorkMode:     p.WorkMode,
		SalaryMin:    p.SalaryMin,
		SalaryMax:    p.SalaryMax,
		Openings:     p.Openings,
	}
	if strings.TrimSpace(p.Deadline) != "" {
		deadline, err := time.Parse(time.RFC3339, p.Deadline)
		if err != nil {
			return job.Job{}, common.NewValidationError("invalid job payload", map[string]string{"deadline": "deadline must be RFC3339"})
		}
		j.Deadline = deadline.UTC()
	}
	return j, nil
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobPayload
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	j, err := req.toJob()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), p, j)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobPayload
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	j, err := req.toJob()
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), p, jobID, j)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// UpdateStatus only supports the employer close transition; approvals go
// through the admin endpoints.
func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != string(job.StatusClosed) {
		response.Error(w, common.NewValidationError("invalid status", map[string]string{"status": "employers may only set status to closed"}))
		return
	}
	closed, err := h.jobs.Close(r.Context(), p, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, closed)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), p, jobID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

// GetOwned serves the employer/admin view of a job, regardless of status.
func (h *JobHandler) GetOwned(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.GetOwned(r.Context(), p, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := atoiDefault(query.Get("limit"), 20)
	offset := atoiDefault(query.Get("offset"), 0)
	var skills []string
	if raw := strings.TrimSpace(query.Get("skills")); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				skills = append(skills, skill)
			}
		}
	}
	items, err := h.jobs.ListOpen(r.Context(), limit, offset, skills)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) ListByEmployer(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.jobs.ListByEmployer(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
