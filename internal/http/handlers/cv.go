package handlers

import (
	"net/http"

	"github.com/ousmanseid/job-site-sub000/internal/app"
	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/cv"
	"github.com/ousmanseid/job-site-sub000/internal/http/response"
)

const maxUploadBytes = 6 << 20

type CVHandler struct {
	cvs *app.CVService
}

func NewCVHandler(cvs *app.CVService) *CVHandler {
	return &CVHandler{cvs: cvs}
}

type cvRequest struct {
	Summary    string   `json:"summary"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
	Skills     []string `json:"skills"`
	Template   string   `json:"template"`
	IsDefault  bool     `json:"is_default"`
}

func (req cvRequest) toCV() cv.CV {
	return cv.CV{
		Summary:    req.Summary,
		Experience: req.Experience,
		Education:  req.Education,
		Skills:     req.Skills,
		Template:   req.Template,
		IsDefault:  req.IsDefault,
	}
}

func (h *CVHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.cvs.List(r.Context(), p)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *CVHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req cvRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.cvs.Create(r.Context(), p, req.toCV())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CVHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	cvID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req cvRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.cvs.Update(r.Context(), p, cvID, req.toCV())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CVHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	cvID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.cvs.Delete(r.Context(), p, cvID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *CVHandler) Upload(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"file": "file is required"}))
		return
	}
	defer file.Close()
	created, err := h.cvs.Upload(r.Context(), p, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}
