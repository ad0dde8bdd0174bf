package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
)

func newMessageFixture(t *testing.T) (*MessageService, string, string) {
	t.Helper()

	db := newTestDB(t)
	eventSvc := NewEventService(db)
	users := NewUserService(db, eventSvc)

	sender := createTestUser(t, users, "sender", "pass", "teacher")
	recipient := createTestUser(t, users, "recipient", "pass", "parent")

	return NewMessageService(db, nil, users, eventSvc), sender.ID, recipient.ID
}

func TestSendMessage_AndInbox(t *testing.T) {
	svc, senderID, recipientID := newMessageFixture(t)

	sent, err := svc.SendMessage(senderID, recipientID, "Parent meeting on Thursday.")
	require.NoError(t, err)
	assert.False(t, sent.IsRead)

	inbox, err := svc.GetInbox(recipientID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Parent meeting on Thursday.", inbox[0].Body)

	outbox, err := svc.GetSent(senderID)
	require.NoError(t, err)
	require.Len(t, outbox, 1)
	assert.Equal(t, sent.ID, outbox[0].ID)

	senderInbox, err := svc.GetInbox(senderID)
	require.NoError(t, err)
	assert.Empty(t, senderInbox, "sender's inbox stays empty")
}

func TestSendMessage_Validation(t *testing.T) {
	svc, senderID, recipientID := newMessageFixture(t)

	_, err := svc.SendMessage(senderID, recipientID, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.SendMessage(senderID, "no-such-user", "hello")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMarkRead_RecipientOnly(t *testing.T) {
	svc, senderID, recipientID := newMessageFixture(t)

	sent, err := svc.SendMessage(senderID, recipientID, "Grades are out.")
	require.NoError(t, err)

	_, err = svc.MarkRead(sent.ID, senderID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	read, err := svc.MarkRead(sent.ID, recipientID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
}

func TestDeleteMessage_SenderOrRecipient(t *testing.T) {
	svc, senderID, recipientID := newMessageFixture(t)

	first, err := svc.SendMessage(senderID, recipientID, "one")
	require.NoError(t, err)
	second, err := svc.SendMessage(senderID, recipientID, "two")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMessage(first.ID, "stranger"), apperr.ErrForbidden)
	require.NoError(t, svc.DeleteMessage(first.ID, senderID))
	require.NoError(t, svc.DeleteMessage(second.ID, recipientID))

	_, err = svc.GetMessageByID(first.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
