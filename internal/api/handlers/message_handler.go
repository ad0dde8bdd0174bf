package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/auth"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/services"
)

// MessageHandler handles HTTP requests for direct messaging.
type MessageHandler struct {
	service services.MessageServiceProvider
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service services.MessageServiceProvider) *MessageHandler {
	return &MessageHandler{service: service}
}

// Inbox handles listing the authenticated user's received messages.
func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.ErrInvalidToken)
		return
	}

	messages, err := h.service.GetInbox(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// Sent handles listing the authenticated user's sent messages.
func (h *MessageHandler) Sent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.ErrInvalidToken)
		return
	}

	messages, err := h.service.GetSent(claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// Send handles sending a direct message.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.ErrInvalidToken)
		return
	}

	var payload struct {
		RecipientID string `json:"recipientId" validate:"required"`
		Body        string `json:"body" validate:"required"`
	}
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	message, err := h.service.SendMessage(claims.UserID, payload.RecipientID, payload.Body)
	if err != nil {
		log.Warn().Err(err).Str("sender_id", claims.UserID).Msg("Failed to send message")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// MarkRead handles flagging a received message as read.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.ErrInvalidToken)
		return
	}

	message, err := h.service.MarkRead(chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message)
}

// Delete handles removing a message the user sent or received.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.ErrInvalidToken)
		return
	}

	if err := h.service.DeleteMessage(chi.URLParam(r, "id"), claims.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
