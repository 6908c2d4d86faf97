package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

// Inbound actions.
const (
	actionCreateRoom     = "createRoom"
	actionCreateBotRoom  = "createBotRoom"
	actionJoinRoom       = "joinRoom"
	actionMove           = "move"
	actionRequestRematch = "requestRematch"
	actionAcceptRematch  = "acceptRematch"
	actionDeclineRematch = "declineRematch"
	actionForceReset     = "forceReset"
	actionLeaveRoom      = "leaveRoom"
	actionSendMessage    = "sendMessage"
	actionTyping         = "typing"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RoomRequest struct {
	Room       string `json:"room"`
	PlayerName string `json:"playerName"`
}

type MoveRequest struct {
	Room   string      `json:"room"`
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Player entity.Side `json:"player"`
}

type ChatRequest struct {
	Room    string `json:"room"`
	Content string `json:"content"`
}

type TypingRequest struct {
	Room     string `json:"room"`
	IsTyping bool   `json:"isTyping"`
}

type ErrorPayload struct {
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}
