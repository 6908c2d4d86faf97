package entity

import "time"

// Move is the last stone placed on the board.
type Move struct {
	Row    int  `json:"r"`
	Col    int  `json:"c"`
	Player Side `json:"player"`
}

// Score tallies finished games in a room across resets.
type Score struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

// Result is the record of one finished game.
type Result struct {
	Room       string    `json:"room"`
	Winner     Winner    `json:"winner"`
	WinnerName string    `json:"winnerName,omitempty"`
	PlayerX    string    `json:"playerX,omitempty"`
	PlayerO    string    `json:"playerO,omitempty"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Room struct {
	Code     string
	Board    Board
	Turn     Side
	LastMove *Move
	Winner   Winner
	WinCells []Cell
	Moves    int
	Score    Score
	Chat     *ChatLog

	playerX Occupant
	playerO Occupant

	// members keeps join order; names is keyed by connection identity.
	members []string
	names   map[string]string

	rematchX bool
	rematchO bool
}

func NewRoom(code string, chatCapacity int) *Room {
	return &Room{
		Code:  code,
		Board: NewBoard(BoardSize),
		Turn:  X,
		Chat:  NewChatLog(chatCapacity),
		names: make(map[string]string),
	}
}

// Occupant returns who holds the given side.
func (that *Room) Occupant(side Side) Occupant {
	switch side {
	case X:
		return that.playerX
	case O:
		return that.playerO
	default:
		return Occupant{}
	}
}

func (that *Room) setOccupant(side Side, occupant Occupant) {
	switch side {
	case X:
		that.playerX = occupant
	case O:
		that.playerO = occupant
	}
}

// SideOf returns the side held by the connection, Empty for spectators and strangers.
func (that *Room) SideOf(connID string) Side {
	switch {
	case that.playerX.IsConnection(connID):
		return X
	case that.playerO.IsConnection(connID):
		return O
	default:
		return Empty
	}
}

// Assign seats the connection on X, then O, otherwise records it as a spectator.
// A connection that is already a member keeps its seat and only renames.
func (that *Room) Assign(connID, name string) Side {
	if _, ok := that.names[connID]; ok {
		that.names[connID] = name
		return that.SideOf(connID)
	}

	that.names[connID] = name
	that.members = append(that.members, connID)

	for _, side := range []Side{X, O} {
		if !that.Occupant(side).IsAssigned() {
			that.setOccupant(side, ConnectionOccupant(connID))
			return side
		}
	}

	return Empty
}

// SeatBot puts the bot on the first free side and returns it.
// It returns Empty if both sides are taken or the room already has the bot.
func (that *Room) SeatBot() Side {
	if that.BotSide() != Empty {
		return Empty
	}

	for _, side := range []Side{X, O} {
		if !that.Occupant(side).IsAssigned() {
			that.setOccupant(side, BotOccupant())
			return side
		}
	}
	return Empty
}

// BotSide returns the side held by the bot, Empty when there is none.
func (that *Room) BotSide() Side {
	switch {
	case that.playerX.IsBot():
		return X
	case that.playerO.IsBot():
		return O
	default:
		return Empty
	}
}

// Vacate removes the connection, its seat and its pending rematch intent.
// It returns the side that was held and whether the connection was a member.
func (that *Room) Vacate(connID string) (Side, bool) {
	if _, ok := that.names[connID]; !ok {
		return Empty, false
	}

	side := that.SideOf(connID)
	if side.IsPlaying() {
		that.setOccupant(side, Occupant{})
		that.setRematch(side, false)
	}

	delete(that.names, connID)
	for i, member := range that.members {
		if member == connID {
			that.members = append(that.members[:i], that.members[i+1:]...)
			break
		}
	}

	return side, true
}

func (that *Room) HasMember(connID string) bool {
	_, ok := that.names[connID]
	return ok
}

// Name returns the display name recorded for the connection.
func (that *Room) Name(connID string) string {
	return that.names[connID]
}

// Members returns the connected occupants (players and spectators) in join order.
func (that *Room) Members() []string {
	out := make([]string, len(that.members))
	copy(out, that.members)
	return out
}

// IsEmpty reports whether no named occupant is left. The bot does not count.
func (that *Room) IsEmpty() bool {
	return len(that.names) == 0
}

// PlayerName returns the display name of whoever holds the side.
func (that *Room) PlayerName(side Side) string {
	occupant := that.Occupant(side)
	switch {
	case occupant.IsBot():
		return BotName
	case occupant.IsAssigned():
		return that.names[occupant.ConnectionID()]
	default:
		return ""
	}
}

func (that *Room) setRematch(side Side, wants bool) {
	switch side {
	case X:
		that.rematchX = wants
	case O:
		that.rematchO = wants
	}
}

// WantRematch records the rematch intent of a playing side.
func (that *Room) WantRematch(side Side) {
	that.setRematch(side, true)
}

// WantsRematch reports the intent of a side; the bot always consents.
func (that *Room) WantsRematch(side Side) bool {
	occupant := that.Occupant(side)
	if !occupant.IsAssigned() {
		return false
	}
	if occupant.IsBot() {
		return true
	}

	if side == X {
		return that.rematchX
	}
	return that.rematchO
}

// RematchAgreed reports whether both assigned sides consent to a rematch.
func (that *Room) RematchAgreed() bool {
	return that.WantsRematch(X) && that.WantsRematch(O)
}

func (that *Room) HasRematchIntents() bool {
	return that.rematchX || that.rematchO
}

func (that *Room) ClearRematch() {
	that.rematchX = false
	that.rematchO = false
}

// Finish makes the outcome sticky and counts it in the score.
func (that *Room) Finish(winner Winner, cells []Cell) {
	that.Winner = winner
	that.WinCells = cells

	switch winner {
	case WinnerX:
		that.Score.X++
	case WinnerO:
		that.Score.O++
	case WinnerDraw:
		that.Score.Draws++
	}
}

// Reset starts a new game; code, seats, names, chat and score survive.
func (that *Room) Reset() {
	that.Board.Clear()
	that.Turn = X
	that.LastMove = nil
	that.Winner = WinnerNone
	that.WinCells = nil
	that.Moves = 0
	that.ClearRematch()
}

// Result builds the record of the finished game.
func (that *Room) Result(at time.Time) Result {
	return Result{
		Room:       that.Code,
		Winner:     that.Winner,
		WinnerName: that.PlayerName(that.Winner.Side()),
		PlayerX:    that.PlayerName(X),
		PlayerO:    that.PlayerName(O),
		Moves:      that.Moves,
		FinishedAt: at,
	}
}
