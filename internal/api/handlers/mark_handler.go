package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// MarkHandler handles HTTP requests for grading.
type MarkHandler struct {
	service services.MarkServiceProvider
}

// NewMarkHandler creates a new MarkHandler.
func NewMarkHandler(service services.MarkServiceProvider) *MarkHandler {
	return &MarkHandler{service: service}
}

// MarkPayload defines the structure for mark create/update requests.
type MarkPayload struct {
	StudentID  string `json:"studentId" validate:"required"`
	ScheduleID string `json:"scheduleId" validate:"required"`
	Grade      int    `json:"grade" validate:"required"`
	Comment    string `json:"comment"`
}

// GetForStudent handles listing the marks of one student (?studentId=).
func (h *MarkHandler) GetForStudent(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("studentId")
	marks, err := h.service.GetMarksForStudent(studentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, marks)
}

// Get handles retrieving a mark by ID.
func (h *MarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	mark, err := h.service.GetMarkByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mark)
}

// Create handles recording a mark.
func (h *MarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload MarkPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	mark, err := h.service.CreateMark(models.Mark{
		StudentID:  payload.StudentID,
		ScheduleID: payload.ScheduleID,
		Grade:      payload.Grade,
		Comment:    payload.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mark)
}

// Update handles correcting a mark.
func (h *MarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload MarkPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	mark, err := h.service.UpdateMark(id, models.Mark{Grade: payload.Grade, Comment: payload.Comment})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mark)
}

// Delete handles removing a mark.
func (h *MarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMark(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
