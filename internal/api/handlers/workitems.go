package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maren/taskhive/internal/api/dto"
	"github.com/maren/taskhive/internal/api/middleware"
	"github.com/maren/taskhive/internal/database/models"
	"github.com/maren/taskhive/internal/workitems"
)

type WorkItemHandler struct {
	service *workitems.Service
}

func NewWorkItemHandler(service *workitems.Service) *WorkItemHandler {
	return &WorkItemHandler{service: service}
}

func itemToResponse(item *workitems.ItemView) dto.WorkItemResponse {
	resp := dto.WorkItemResponse{
		ID:            item.ID.String(),
		ProjectID:     item.ProjectID.String(),
		Title:         item.Title,
		Description:   item.Description,
		Status:        int(item.Status),
		Priority:      int(item.Priority),
		AssigneeName:  item.AssigneeName,
		AssigneeEmail: item.AssigneeEmail,
		DueDate:       item.DueDate,
		StoryPoints:   item.StoryPoints,
	}
	if item.AssigneeID != nil {
		s := item.AssigneeID.String()
		resp.AssigneeID = &s
	}
	return resp
}

func commentToResponse(c *workitems.CommentView) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         c.ID.String(),
		WorkItemID: c.WorkItemID.String(),
		AuthorID:   c.AuthorID.String(),
		AuthorName: c.AuthorName,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
	}
}

// ListByProject handles GET /api/v1/work-items/project/{projectId}
func (h *WorkItemHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	items, err := h.service.ListByProject(r.Context(), orgID, projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]dto.WorkItemResponse, len(items))
	for i := range items {
		response[i] = itemToResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, response)
}

// Create handles POST /api/v1/work-items
func (h *WorkItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	var req dto.CreateWorkItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	projectID, _ := uuid.Parse(req.ProjectID)
	input := workitems.CreateInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.WorkItemPriority(req.Priority),
		DueDate:     req.DueDate,
		StoryPoints: req.StoryPoints,
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		assigneeID, _ := uuid.Parse(*req.AssigneeID)
		input.AssigneeID = &assigneeID
	}

	item, err := h.service.Create(r.Context(), orgID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemToResponse(item))
}

// UpdateStatus handles PATCH /api/v1/work-items/{id}/status
func (h *WorkItemHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid work item ID"})
		return
	}

	var req dto.UpdateWorkItemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := h.service.UpdateStatus(r.Context(), orgID, itemID, models.WorkItemStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemToResponse(item))
}

// UpdateAssignee handles PATCH /api/v1/work-items/{id}/assignee
func (h *WorkItemHandler) UpdateAssignee(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid work item ID"})
		return
	}

	var req dto.UpdateWorkItemAssigneeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var assigneeID *uuid.UUID
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		parsed, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid assignee ID"})
			return
		}
		assigneeID = &parsed
	}

	item, err := h.service.UpdateAssignee(r.Context(), orgID, itemID, assigneeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemToResponse(item))
}

// ListComments handles GET /api/v1/work-items/{id}/comments
func (h *WorkItemHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid work item ID"})
		return
	}

	comments, err := h.service.ListComments(r.Context(), orgID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		response[i] = commentToResponse(&comments[i])
	}
	writeJSON(w, http.StatusOK, response)
}

// AddComment handles POST /api/v1/work-items/{id}/comments
func (h *WorkItemHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid work item ID"})
		return
	}

	var req dto.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	comment, err := h.service.AddComment(r.Context(), identity.OrganizationID, identity.UserID, itemID, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentToResponse(comment))
}
