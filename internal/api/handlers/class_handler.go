package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// ClassHandler handles HTTP requests for school classes.
type ClassHandler struct {
	service     services.ClassServiceProvider
	scheduleSvc services.ScheduleServiceProvider
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(service services.ClassServiceProvider, scheduleSvc services.ScheduleServiceProvider) *ClassHandler {
	return &ClassHandler{service: service, scheduleSvc: scheduleSvc}
}

// ClassPayload defines the structure for class create/update requests.
type ClassPayload struct {
	Grade     int     `json:"grade" validate:"required,min=1,max=11"`
	Title     string  `json:"title" validate:"required"`
	Classroom string  `json:"classroom"`
	TeacherID *string `json:"teacherId"`
}

// GetAll handles the request to list all classes.
func (h *ClassHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.GetAllClasses()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// Get handles retrieving a class by ID.
func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	class, err := h.service.GetClassByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// GetSchedules handles retrieving the timetable of a class.
func (h *ClassHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleSvc.GetSchedulesForClass(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// Create handles creating a new class.
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload ClassPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	class, err := h.service.CreateClass(models.SchoolClass{
		Grade:     payload.Grade,
		Title:     payload.Title,
		Classroom: payload.Classroom,
		TeacherID: payload.TeacherID,
	})
	if err != nil {
		log.Error().Err(err).Int("grade", payload.Grade).Msg("Failed to create class")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

// Update handles updating a class.
func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload ClassPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	class, err := h.service.UpdateClass(id, models.SchoolClass{
		Grade:     payload.Grade,
		Title:     payload.Title,
		Classroom: payload.Classroom,
		TeacherID: payload.TeacherID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// Delete handles removing a class.
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteClass(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
