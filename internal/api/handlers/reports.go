package handlers

import (
	"net/http"

	"github.com/baharkarakas/projectify-backend/internal/api/httpx"
	"github.com/baharkarakas/projectify-backend/internal/services"
)

type ReportHandler struct {
	Svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// Create handles POST /reports/create.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.AddReportInput
	if !decode(w, r, &in) {
		return
	}
	rep, err := h.Svc.AddReport(r.Context(), in)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "New report created", "report": rep})
}

// Update handles PUT /reports/update.
func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateReportInput
	if !decode(w, r, &in) {
		return
	}
	if err := h.Svc.UpdateReports(r.Context(), in); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Report updated"})
}

// List handles GET /reports?userId=.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reps, err := h.Svc.GetReports(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"reports": reps})
}

// Reconcile handles POST /reports/reconcile?userId=.
func (h *ReportHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	u, err := h.Svc.Reconcile(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Associations reconciled", "user": u})
}
