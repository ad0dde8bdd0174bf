package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewMessage marshals an action/payload pair into a wire message. Marshal
// failures are swallowed here because payloads are our own JSON-safe models.
func NewMessage(action string, payload interface{}) []byte {
	b, _ := json.Marshal(Message{Action: action, Payload: payload})
	return b
}

// NewErrorMessage builds an error message for a client.
func NewErrorMessage(text string) []byte {
	return NewMessage("error", map[string]string{"message": text})
}
