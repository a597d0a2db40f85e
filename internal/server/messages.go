package server

import "encoding/json"

// MessageType names a websocket message.
type MessageType string

const (
	MessageTypeMove  MessageType = "move"
	MessageTypeAI    MessageType = "ai"
	MessageTypeState MessageType = "state"
	MessageTypeMoves MessageType = "moves"
	MessageTypeError MessageType = "error"
)

// Message is one websocket frame. Clients send "move" with a from/to
// payload, "ai", "state", or "moves" with an optional from square; the
// server answers with "state", "moves" or "error".
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the payload of an "error" message and the body of error
// responses.
type ErrorPayload struct {
	Error string `json:"error"`
}

type movesQuery struct {
	From string `json:"from"`
}

func newMessage(t MessageType, v interface{}) Message {
	payload, err := json.Marshal(v)
	if err != nil {
		return errorMessage(err)
	}
	return Message{Type: t, Payload: payload}
}

func errorMessage(err error) Message {
	payload, _ := json.Marshal(ErrorPayload{Error: err.Error()})
	return Message{Type: MessageTypeError, Payload: payload}
}
