package handlers

import (
	"context"
	"net/http"

	"github.com/ousmanseid/job-site-sub000/internal/app"
	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
	"github.com/ousmanseid/job-site-sub000/internal/http/response"
)

// AdminHandler carries the moderation surface: job approval and user
// account flips.
type AdminHandler struct {
	jobs      *app.JobService
	companies *app.CompanyService
}

func NewAdminHandler(jobs *app.JobService, companies *app.CompanyService) *AdminHandler {
	return &AdminHandler{jobs: jobs, companies: companies}
}

func (h *AdminHandler) ApproveJob(w http.ResponseWriter, r *http.Request) {
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
	approved, err := h.jobs.Approve(r.Context(), p, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, approved)
}

type rejectJobRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) RejectJob(w http.ResponseWriter, r *http.Request) {
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
	var req rejectJobRequest
	if err := decodeJSONOptional(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	rejected, err := h.jobs.Reject(r.Context(), p, jobID, req.Reason)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, rejected)
}

func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.companies.ApproveEmployer)
}

func (h *AdminHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.companies.Deactivate)
}

func (h *AdminHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.companies.Activate)
}

func (h *AdminHandler) userAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, p user.Principal, id common.UUID) (*user.User, error)) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	userID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := action(r.Context(), p, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	userID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.companies.DeleteUser(r.Context(), p, userID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var role user.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, ok := user.ParseRole(raw)
		if !ok {
			response.Error(w, common.NewValidationError("invalid role", map[string]string{"role": "role must be jobseeker, employer, or admin"}))
			return
		}
		role = parsed
	}
	items, err := h.companies.ListUsers(r.Context(), p, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
