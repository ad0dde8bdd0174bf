package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// ScheduleHandler handles HTTP requests for the timetable.
type ScheduleHandler struct {
	service services.ScheduleServiceProvider
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(service services.ScheduleServiceProvider) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// SchedulePayload defines the structure for timetable create/update requests.
type SchedulePayload struct {
	ClassID      string `json:"classId" validate:"required"`
	SubjectID    string `json:"subjectId" validate:"required"`
	TeacherID    string `json:"teacherId" validate:"required"`
	DayOfWeek    int    `json:"dayOfWeek" validate:"required,min=1,max=7"`
	LessonNumber int    `json:"lessonNumber" validate:"required,min=1"`
	Quarter      int    `json:"quarter" validate:"required,min=1,max=4"`
	SchoolYear   string `json:"schoolYear" validate:"required"`
}

func (p SchedulePayload) toModel() models.Schedule {
	return models.Schedule{
		ClassID:      p.ClassID,
		SubjectID:    p.SubjectID,
		TeacherID:    p.TeacherID,
		DayOfWeek:    p.DayOfWeek,
		LessonNumber: p.LessonNumber,
		Quarter:      p.Quarter,
		SchoolYear:   p.SchoolYear,
	}
}

// GetAll handles the request to list the whole timetable.
func (h *ScheduleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.GetAllSchedules()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// Get handles retrieving a timetable slot by ID.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetScheduleByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// Create handles creating a timetable slot.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload SchedulePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	schedule, err := h.service.CreateSchedule(payload.toModel())
	if err != nil {
		log.Error().Err(err).Str("class_id", payload.ClassID).Msg("Failed to create schedule")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule)
}

// Update handles updating a timetable slot.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload SchedulePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	schedule, err := h.service.UpdateSchedule(id, payload.toModel())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// Delete handles removing a timetable slot.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSchedule(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
