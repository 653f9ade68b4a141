package handlers

import (
	"net/http"

	"github.com/baharkarakas/projectify-backend/internal/api/httpx"
	"github.com/baharkarakas/projectify-backend/internal/api/validate"
	"github.com/baharkarakas/projectify-backend/internal/services"
)

type ProjectHandler struct {
	Svc *services.ProjectService
}

func NewProjectHandler(svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Svc: svc}
}

type createProjectReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectReq
	if !decode(w, r, &req) {
		return
	}
	if errs := validate.Collect(validate.Required("name", req.Name), validate.MaxLen("name", req.Name, 200)); errs != nil {
		writeInvalid(w, "Project name is required", errs)
		return
	}
	p, err := h.Svc.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "New project created", "project": p})
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"projects": ps})
}
