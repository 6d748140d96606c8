package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged with a board client
type MessageType string

const (
	// client -> server
	MessageTypeSelect  MessageType = "select"
	MessageTypeMove    MessageType = "move"
	MessageTypePromote MessageType = "promote"
	MessageTypeNewGame MessageType = "newGame"

	// server -> client
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage encodes payload into a message envelope.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

type SelectPayload struct {
	Square string `json:"square"`
}

type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type PromotePayload struct {
	Square string `json:"square"`
	Piece  string `json:"piece"`
}

// LegalMovesPayload answers a select with the destinations of the piece on Square.
type LegalMovesPayload struct {
	Square string   `json:"square"`
	Moves  []string `json:"moves"`
}

type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
