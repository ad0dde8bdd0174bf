package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// SubjectHandler handles HTTP requests for subjects.
type SubjectHandler struct {
	service services.SubjectServiceProvider
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(service services.SubjectServiceProvider) *SubjectHandler {
	return &SubjectHandler{service: service}
}

// SubjectPayload defines the structure for subject create/update requests.
type SubjectPayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// GetAll handles the request to list all subjects.
func (h *SubjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.GetAllSubjects()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

// Get handles retrieving a subject by ID.
func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	subject, err := h.service.GetSubjectByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

// Create handles creating a new subject.
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload SubjectPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	subject, err := h.service.CreateSubject(models.Subject{Title: payload.Title, Description: payload.Description})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, subject)
}

// Update handles updating a subject.
func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload SubjectPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	subject, err := h.service.UpdateSubject(id, models.Subject{Title: payload.Title, Description: payload.Description})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

// Delete handles removing a subject.
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSubject(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
