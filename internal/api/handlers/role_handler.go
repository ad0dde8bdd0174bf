package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// RoleHandler handles HTTP requests for role management.
type RoleHandler struct {
	service services.RoleServiceProvider
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(service services.RoleServiceProvider) *RoleHandler {
	return &RoleHandler{service: service}
}

// GetAll handles the request to list all roles.
func (h *RoleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.GetAllRoles()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

// Create handles creating a new role.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name" validate:"required,min=2"`
	}
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	role, err := h.service.CreateRole(payload.Name)
	if err != nil {
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create role")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, role)
}

// Delete handles removing a role.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteRole(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
