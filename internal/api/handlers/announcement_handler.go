package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/auth"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// AnnouncementHandler handles HTTP requests for announcements.
type AnnouncementHandler struct {
	service services.AnnouncementServiceProvider
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(service services.AnnouncementServiceProvider) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// AnnouncementPayload defines the structure for create/update requests.
type AnnouncementPayload struct {
	Title        string     `json:"title" validate:"required"`
	Body         string     `json:"body" validate:"required"`
	AudienceRole *string    `json:"audienceRole"`
	PublishAt    *time.Time `json:"publishAt"`
	Recurrence   string     `json:"recurrence"`
}

// GetAll handles listing announcements. Drafts are included only with ?all=true.
func (h *AnnouncementHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("all") != "true"
	announcements, err := h.service.GetAllAnnouncements(publishedOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

// Get handles retrieving an announcement by ID.
func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetAnnouncementByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Create handles posting an announcement. The author is taken from the token.
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.ErrInvalidToken)
		return
	}

	var payload AnnouncementPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.service.CreateAnnouncement(models.Announcement{
		AuthorID:     claims.UserID,
		Title:        payload.Title,
		Body:         payload.Body,
		AudienceRole: payload.AudienceRole,
		PublishAt:    payload.PublishAt,
		Recurrence:   payload.Recurrence,
	})
	if err != nil {
		log.Error().Err(err).Str("author_id", claims.UserID).Msg("Failed to create announcement")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// Update handles editing an announcement.
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload AnnouncementPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.service.UpdateAnnouncement(id, models.Announcement{
		Title:        payload.Title,
		Body:         payload.Body,
		AudienceRole: payload.AudienceRole,
		PublishAt:    payload.PublishAt,
		Recurrence:   payload.Recurrence,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Publish handles force-publishing a draft.
func (h *AnnouncementHandler) Publish(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Publish(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Delete handles removing an announcement.
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAnnouncement(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
