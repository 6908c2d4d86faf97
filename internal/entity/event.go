package entity

// Outbound actions.
const (
	ActionRoomState            = "roomState"
	ActionMoveApplied          = "moveApplied"
	ActionMoveRejected         = "moveRejected"
	ActionRematchRequested     = "rematchRequested"
	ActionRematchAccepted      = "rematchAccepted"
	ActionRematchDeclined      = "rematchDeclined"
	ActionBoardReset           = "boardReset"
	ActionForceResetGame       = "forceResetGame"
	ActionOpponentDisconnected = "opponentDisconnected"
	ActionChatMessage          = "chatMessage"
	ActionChatHistory          = "chatHistory"
	ActionUserTyping           = "userTyping"
	ActionCreatedRoom          = "createdRoom"
	ActionError                = "error"
)

// Event is one outbound message handed to the transport.
type Event struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

// RoomState is an immutable snapshot of a room.
type RoomState struct {
	Room     string            `json:"room"`
	Board    Board             `json:"board"`
	Turn     Side              `json:"turn"`
	Players  map[string]string `json:"players"`
	LastMove *Move             `json:"lastMove"`
	Winner   Winner            `json:"winner"`
	WinCells []Cell            `json:"winCells"`
	Score    Score             `json:"score"`
	Rematch  map[string]bool   `json:"rematch"`
	Viewers  int               `json:"viewers"`
}

type MoveAppliedPayload struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player Side   `json:"player"`
	Winner Winner `json:"winner"`
}

type BoardResetPayload struct {
	Board    Board `json:"board"`
	LastMove *Move `json:"lastMove"`
}

type ReasonPayload struct {
	Reason string `json:"reason"`
}

type PlayerPayload struct {
	PlayerName string `json:"playerName"`
}

type RoomPayload struct {
	Room string `json:"room"`
}

type ChatHistoryPayload struct {
	Messages []ChatMessage `json:"messages"`
}

type TypingPayload struct {
	User     string `json:"user"`
	IsTyping bool   `json:"isTyping"`
}

// Snapshot copies the room into a value safe to hand to another goroutine.
func (that *Room) Snapshot() RoomState {
	var lastMove *Move
	if that.LastMove != nil {
		move := *that.LastMove
		lastMove = &move
	}

	winCells := make([]Cell, len(that.WinCells))
	copy(winCells, that.WinCells)

	viewers := 0
	for _, member := range that.members {
		if !that.SideOf(member).IsPlaying() {
			viewers++
		}
	}

	return RoomState{
		Room:  that.Code,
		Board: that.Board.Clone(),
		Turn:  that.Turn,
		Players: map[string]string{
			X.String(): that.PlayerName(X),
			O.String(): that.PlayerName(O),
		},
		LastMove: lastMove,
		Winner:   that.Winner,
		WinCells: winCells,
		Score:    that.Score,
		Rematch: map[string]bool{
			X.String(): that.WantsRematch(X),
			O.String(): that.WantsRematch(O),
		},
		Viewers: viewers,
	}
}
