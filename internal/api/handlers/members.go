package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maren/taskhive/internal/api/dto"
	"github.com/maren/taskhive/internal/api/middleware"
	"github.com/maren/taskhive/internal/database/models"
	"github.com/maren/taskhive/internal/members"
)

type MemberHandler struct {
	service *members.Service
}

func NewMemberHandler(service *members.Service) *MemberHandler {
	return &MemberHandler{service: service}
}

func memberToResponse(user *models.User) dto.MemberResponse {
	return dto.MemberResponse{
		ID:          user.ID.String(),
		FullName:    user.FullName,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
	}
}

// List handles GET /api/v1/members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	users, err := h.service.List(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]dto.MemberResponse, len(users))
	for i := range users {
		response[i] = memberToResponse(&users[i])
	}
	writeJSON(w, http.StatusOK, response)
}

// Add handles POST /api/v1/members
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrganizationID(r.Context())

	var req dto.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	user, err := h.service.Add(r.Context(), orgID, members.AddInput{
		FullName:    req.FullName,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, memberToResponse(user))
}

// Remove handles DELETE /api/v1/members/{id}
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	if err := h.service.Remove(r.Context(), identity.OrganizationID, identity.UserID, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
