package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/app"
	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/application"
	"github.com/ousmanseid/job-site-sub000/internal/http/middleware"
	"github.com/ousmanseid/job-site-sub000/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
	CVID        string `json:"cv_id,omitempty"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
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
	var req applyRequest
	if err := decodeJSONOptional(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	var cvID *common.UUID
	if strings.TrimSpace(req.CVID) != "" {
		parsed, err := common.ParseUUID(req.CVID)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid request", map[string]string{"cv_id": "invalid uuid"}))
			return
		}
		cvID = &parsed
	}
	if h.limiter != nil {
		key := "apply:" + p.ID.String()
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), p, jobID, req.CoverLetter, cvID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), p, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByApplicant(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListCompany(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByCompany(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
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
	items, err := h.applications.ListByJob(r.Context(), p, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateStatus takes status and notes from the query string, falling back
// to a JSON body.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	req := updateStatusRequest{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Notes:  strings.TrimSpace(r.URL.Query().Get("notes")),
	}
	if req.Status == "" {
		if err := decodeJSONOptional(r, &req); err != nil {
			response.Error(w, err)
			return
		}
	}
	if req.Status == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	if h.limiter != nil {
		key := "application_status:" + p.ID.String()
		if !h.limiter.Allow(key, 30, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "status update rate limit exceeded", nil))
			return
		}
	}
	updated, err := h.applications.UpdateStatus(r.Context(), p, applicationID, application.Status(req.Status), req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	withdrawn, err := h.applications.Withdraw(r.Context(), p, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, withdrawn)
}
