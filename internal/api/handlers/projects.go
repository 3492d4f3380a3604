package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maren/taskhive/internal/api/dto"
	"github.com/maren/taskhive/internal/api/middleware"
	"github.com/maren/taskhive/internal/projects"
)

type ProjectHandler struct {
	service *projects.Service
}

func NewProjectHandler(service *projects.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func projectToResponse(p *projects.Summary) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		DueDate:        p.DueDate,
		TotalTasks:     p.TotalItems,
		CompletedTasks: p.CompletedItems,
		IsCompleted:    p.IsCompleted,
	}
}

// List handles GET /api/v1/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	result, err := h.service.ListActive(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]dto.ProjectResponse, len(result))
	for i := range result {
		response[i] = projectToResponse(&result[i])
	}
	writeJSON(w, http.StatusOK, response)
}

// ListCompleted handles GET /api/v1/projects/completed
func (h *ProjectHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	result, err := h.service.ListCompleted(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]dto.CompletedProjectResponse, len(result))
	for i := range result {
		response[i] = dto.CompletedProjectResponse{
			ProjectResponse:   projectToResponse(&result[i].Summary),
			DistinctAssignees: result[i].DistinctAssignees,
			CompletedAt:       result[i].CompletedAt,
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// Create handles POST /api/v1/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	result, err := h.service.Create(r.Context(), identity.OrganizationID, identity.UserID, projects.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, projectToResponse(result))
}

// Delete handles DELETE /api/v1/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	if err := h.service.Delete(r.Context(), orgID, projectID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete handles PATCH /api/v1/projects/{id}/complete
func (h *ProjectHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	result, err := h.service.Complete(r.Context(), orgID, projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projectToResponse(result))
}
