package handlers

import (
	"net/http"

	"github.com/maren/taskhive/internal/api/dto"
	"github.com/maren/taskhive/internal/api/middleware"
	"github.com/maren/taskhive/internal/dashboard"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	summary, err := h.service.GetSummary(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardSummaryResponse{
		TotalProjects:   summary.TotalProjects,
		TotalTasks:      summary.TotalTasks,
		CompletedTasks:  summary.CompletedTasks,
		InProgressTasks: summary.InProgressTasks,
		OverdueTasks:    summary.OverdueTasks,
	})
}
