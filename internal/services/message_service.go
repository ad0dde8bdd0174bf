package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/websocket"
)

// MessageServiceProvider defines the interface for direct messaging.
type MessageServiceProvider interface {
	GetMessageByID(id string) (models.Message, error)
	GetInbox(userID string) ([]models.Message, error)
	GetSent(userID string) ([]models.Message, error)
	SendMessage(senderID, recipientID, body string) (models.Message, error)
	MarkRead(id, userID string) (models.Message, error)
	DeleteMessage(id, userID string) error
}

// MessageService provides direct messaging between accounts. New messages
// are pushed to the recipient's open websocket connections.
type MessageService struct {
	db       *sql.DB
	hub      *websocket.Hub
	users    UserServiceProvider
	eventSvc EventServiceProvider
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *sql.DB, hub *websocket.Hub, users UserServiceProvider, eventSvc EventServiceProvider) *MessageService {
	return &MessageService{db: db, hub: hub, users: users, eventSvc: eventSvc}
}

const messageColumns = "id, sender_id, recipient_id, body, is_read, created_at"

// GetMessageByID retrieves a single message.
func (s *MessageService) GetMessageByID(id string) (models.Message, error) {
	row := s.db.QueryRow("SELECT "+messageColumns+" FROM messages WHERE id = ?", id)
	return s.scanMessage(row)
}

// GetInbox retrieves messages received by a user, newest first.
func (s *MessageService) GetInbox(userID string) ([]models.Message, error) {
	return s.list("recipient_id = ?", userID)
}

// GetSent retrieves messages sent by a user, newest first.
func (s *MessageService) GetSent(userID string) ([]models.Message, error) {
	return s.list("sender_id = ?", userID)
}

func (s *MessageService) list(where, arg string) ([]models.Message, error) {
	rows, err := s.db.Query("SELECT "+messageColumns+" FROM messages WHERE "+where+" ORDER BY created_at DESC", arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		message, err := s.scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

// SendMessage stores a message and pushes it to the recipient.
func (s *MessageService) SendMessage(senderID, recipientID, body string) (models.Message, error) {
	if body == "" {
		return models.Message{}, fmt.Errorf("empty message body: %w", apperr.ErrInvalidInput)
	}
	if _, err := s.users.GetUserByID(recipientID); err != nil {
		return models.Message{}, err
	}

	id := uuid.New().String()
	_, err := s.db.Exec("INSERT INTO messages (id, sender_id, recipient_id, body) VALUES (?, ?, ?, ?)",
		id, senderID, recipientID, body)
	if err != nil {
		return models.Message{}, err
	}

	message, err := s.GetMessageByID(id)
	if err != nil {
		return models.Message{}, err
	}

	if s.hub != nil {
		s.hub.BroadcastToUser(recipientID, websocket.NewMessage("message", message))
	}
	return message, nil
}

// MarkRead flags a message as read. Only the recipient may do so.
func (s *MessageService) MarkRead(id, userID string) (models.Message, error) {
	message, err := s.GetMessageByID(id)
	if err != nil {
		return models.Message{}, err
	}
	if message.RecipientID != userID {
		return models.Message{}, apperr.ErrForbidden
	}

	if _, err := s.db.Exec("UPDATE messages SET is_read = TRUE WHERE id = ?", id); err != nil {
		return models.Message{}, err
	}
	return s.GetMessageByID(id)
}

// DeleteMessage removes a message. Sender or recipient may delete.
func (s *MessageService) DeleteMessage(id, userID string) error {
	message, err := s.GetMessageByID(id)
	if err != nil {
		return err
	}
	if message.SenderID != userID && message.RecipientID != userID {
		return apperr.ErrForbidden
	}

	_, err = s.db.Exec("DELETE FROM messages WHERE id = ?", id)
	return err
}

func (s *MessageService) scanMessage(scanner interface{ Scan(...interface{}) error }) (models.Message, error) {
	var message models.Message
	err := scanner.Scan(&message.ID, &message.SenderID, &message.RecipientID, &message.Body, &message.IsRead, &message.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Message{}, fmt.Errorf("message: %w", apperr.ErrNotFound)
		}
		return models.Message{}, err
	}
	return message, nil
}
