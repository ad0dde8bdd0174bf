package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// HomeworkHandler handles HTTP requests for homework assignments.
type HomeworkHandler struct {
	service services.HomeworkServiceProvider
}

// NewHomeworkHandler creates a new HomeworkHandler.
func NewHomeworkHandler(service services.HomeworkServiceProvider) *HomeworkHandler {
	return &HomeworkHandler{service: service}
}

// HomeworkPayload defines the structure for homework create/update requests.
type HomeworkPayload struct {
	ScheduleID  string    `json:"scheduleId" validate:"required"`
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
}

// GetForSchedule handles listing assignments of one slot (?scheduleId=).
func (h *HomeworkHandler) GetForSchedule(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.service.GetHomeworkForSchedule(r.URL.Query().Get("scheduleId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

// Get handles retrieving an assignment by ID.
func (h *HomeworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	hw, err := h.service.GetHomeworkByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hw)
}

// Create handles assigning homework.
func (h *HomeworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload HomeworkPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	hw, err := h.service.CreateHomework(models.Homework{
		ScheduleID:  payload.ScheduleID,
		Description: payload.Description,
		DueDate:     payload.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hw)
}

// Update handles updating an assignment.
func (h *HomeworkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload HomeworkPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	hw, err := h.service.UpdateHomework(id, models.Homework{
		Description: payload.Description,
		DueDate:     payload.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hw)
}

// Delete handles removing an assignment.
func (h *HomeworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHomework(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
