package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/caro"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

const (
	DefaultMaxNameLength    = 32
	DefaultMaxMessageLength = 500
)

// publisher delivers events to connections. It must not block.
type publisher interface {
	Publish(recipients []string, event entity.Event)
}

type botService interface {
	Decide(board entity.Board, botSide, opponentSide entity.Side) (entity.Cell, bool)
}

// ResultRecorder receives every finished game.
type ResultRecorder interface {
	Record(result entity.Result)
}

type roomRegistry interface {
	Resolve(code string, fn func(room *entity.Room) error) error
	WithRoom(code string, fn func(room *entity.Room) error) error
	Peek(code string, fn func(room *entity.Room)) error

	Bind(connID, code string)
	Unbind(connID, code string)
	RoomOf(connID string) (string, bool)
}

type Limits struct {
	MaxNameLength    int
	MaxMessageLength int
	ChatHistory      int
}

type noopRecorder struct{}

func (noopRecorder) Record(entity.Result) {}

// GameManager runs every room operation under the room lock and publishes
// the resulting events before the lock is released.
type GameManager struct {
	logger *slog.Logger

	rooms     roomRegistry
	bot       botService
	publisher publisher
	recorder  ResultRecorder

	limits Limits
	now    func() time.Time
}

func NewGameManager(
	logger *slog.Logger,
	rooms roomRegistry,
	bot botService,
	publisher publisher,
	recorder ResultRecorder,
	limits Limits,
) *GameManager {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if limits.MaxNameLength <= 0 {
		limits.MaxNameLength = DefaultMaxNameLength
	}
	if limits.MaxMessageLength <= 0 {
		limits.MaxMessageLength = DefaultMaxMessageLength
	}
	if limits.ChatHistory <= 0 {
		limits.ChatHistory = entity.ChatHistory
	}

	return &GameManager{
		logger:    logger.With("component", "gameManager"),
		rooms:     rooms,
		bot:       bot,
		publisher: publisher,
		recorder:  recorder,
		limits:    limits,
		now:       time.Now,
	}
}

// CreateRoom joins the connection to the room, generating a code when none is given.
func (that *GameManager) CreateRoom(connID, code, name string) (string, entity.Side, error) {
	return that.create(connID, code, name, false)
}

// CreateBotRoom is CreateRoom with the bot taking the seat left free.
func (that *GameManager) CreateBotRoom(connID, code, name string) (string, entity.Side, error) {
	return that.create(connID, code, name, true)
}

func (that *GameManager) create(connID, code, name string, withBot bool) (string, entity.Side, error) {
	log := that.logger.With("method", "create", "connID", connID)

	name, err := validateName(name, that.limits.MaxNameLength)
	if err != nil {
		return "", entity.Empty, fmt.Errorf("invalid player name: %w", err)
	}

	if code == "" {
		code = GenerateRoomCode()
	}

	code, err = ValidateRoomCode(code)
	if err != nil {
		return "", entity.Empty, fmt.Errorf("invalid room code: %w", err)
	}

	that.leaveOther(connID, code)

	var side entity.Side
	err = that.rooms.Resolve(code, func(room *entity.Room) error {
		side = room.Assign(connID, name)
		if withBot {
			room.SeatBot()
		}

		that.welcome(room, connID)
		that.publish([]string{connID}, entity.ActionCreatedRoom, entity.RoomPayload{Room: room.Code})
		that.playBot(room)

		return nil
	})
	if err != nil {
		return "", entity.Empty, fmt.Errorf("failed to create room: %w", err)
	}

	log.Info("room created", "room", code, "side", side.String(), "bot", withBot)

	return code, side, nil
}

// JoinRoom seats the connection on the first free side or as a spectator.
func (that *GameManager) JoinRoom(connID, code, name string) (entity.Side, error) {
	log := that.logger.With("method", "JoinRoom", "connID", connID)

	code, err := ValidateRoomCode(code)
	if err != nil {
		return entity.Empty, fmt.Errorf("invalid room code: %w", err)
	}

	name, err = validateName(name, that.limits.MaxNameLength)
	if err != nil {
		return entity.Empty, fmt.Errorf("invalid player name: %w", err)
	}

	that.leaveOther(connID, code)

	var side entity.Side
	err = that.rooms.Resolve(code, func(room *entity.Room) error {
		side = room.Assign(connID, name)
		that.welcome(room, connID)
		that.playBot(room)

		return nil
	})
	if err != nil {
		return entity.Empty, fmt.Errorf("failed to join room: %w", err)
	}

	log.Info("joined room", "room", code, "side", side.String())

	return side, nil
}

// welcome records the membership and sends the joiner the chat history and everybody the state.
func (that *GameManager) welcome(room *entity.Room, connID string) {
	that.rooms.Bind(connID, room.Code)

	that.publishState(room)
	that.publish([]string{connID}, entity.ActionChatHistory, entity.ChatHistoryPayload{
		Messages: room.Chat.Last(that.limits.ChatHistory),
	})
}

// leaveOther vacates the room the connection was in before moving to code.
func (that *GameManager) leaveOther(connID, code string) {
	current, ok := that.rooms.RoomOf(connID)
	if !ok || current == code {
		return
	}

	if err := that.LeaveRoom(connID, current); err != nil && !errors.Is(err, apperror.ErrRoomNotFound) {
		that.logger.Warn("failed to leave previous room", "room", current, "error", err)
	}
}

// Move applies a client move. Rejections are sent back to the originator only.
func (that *GameManager) Move(connID, code string, row, col int, side entity.Side) error {
	return that.rooms.WithRoom(code, func(room *entity.Room) error {
		result, err := caro.MakeMove(room, connID, row, col, side)
		if err != nil {
			that.publish([]string{connID}, entity.ActionMoveRejected, entity.ReasonPayload{Reason: err.Error()})
			return fmt.Errorf("move rejected: %w", err)
		}

		that.moved(room, row, col, side, result)
		that.playBot(room)

		return nil
	})
}

// playBot makes the bot move while it holds the turn of an unfinished game.
func (that *GameManager) playBot(room *entity.Room) {
	log := that.logger.With("method", "playBot", "room", room.Code)

	botSide := room.BotSide()
	if botSide == entity.Empty || room.Winner.IsTerminal() || room.Turn != botSide {
		return
	}

	cell, ok := that.bot.Decide(room.Board, botSide, botSide.Opponent())
	if !ok {
		return
	}

	result, err := caro.MakeTrustedMove(room, cell.Row, cell.Col, botSide)
	if err != nil {
		log.Error("bot move rejected", "row", cell.Row, "col", cell.Col, "error", err)
		return
	}

	that.moved(room, cell.Row, cell.Col, botSide, result)
}

func (that *GameManager) moved(room *entity.Room, row, col int, side entity.Side, result caro.Result) {
	that.publish(room.Members(), entity.ActionMoveApplied, entity.MoveAppliedPayload{
		Row:    row,
		Col:    col,
		Player: side,
		Winner: result.Winner,
	})
	that.publishState(room)

	if !result.Winner.IsTerminal() {
		return
	}

	that.notice(room, finishNotice(room))
	that.recorder.Record(room.Result(that.now()))

	that.logger.Info("game finished", "room", room.Code, "winner", result.Winner.String(), "moves", room.Moves)
}

func finishNotice(room *entity.Room) string {
	if room.Winner == entity.WinnerDraw {
		return "Draw!"
	}

	return room.PlayerName(room.Winner.Side()) + " wins!"
}

// RequestRematch records the intent of the caller's side; spectators are ignored.
func (that *GameManager) RequestRematch(connID, code string) error {
	return that.rooms.WithRoom(code, func(room *entity.Room) error {
		side := room.SideOf(connID)
		if !side.IsPlaying() {
			return nil
		}

		room.WantRematch(side)
		that.publish(others(room, connID), entity.ActionRematchRequested, entity.PlayerPayload{
			PlayerName: room.Name(connID),
		})

		if room.RematchAgreed() {
			that.reset(room, entity.ActionRematchAccepted)
			return nil
		}

		that.publishState(room)

		return nil
	})
}

// AcceptRematch is the answer to a request and counts as one.
func (that *GameManager) AcceptRematch(connID, code string) error {
	return that.RequestRematch(connID, code)
}

// DeclineRematch clears every pending intent.
func (that *GameManager) DeclineRematch(connID, code string) error {
	return that.rooms.WithRoom(code, func(room *entity.Room) error {
		if !room.SideOf(connID).IsPlaying() {
			return nil
		}

		room.ClearRematch()
		that.publish(others(room, connID), entity.ActionRematchDeclined, entity.PlayerPayload{
			PlayerName: room.Name(connID),
		})
		that.publishState(room)

		return nil
	})
}

// ForceReset resets the game for any occupant, whatever state it is in.
// There is no further authorization.
func (that *GameManager) ForceReset(connID, code string) error {
	return that.rooms.WithRoom(code, func(room *entity.Room) error {
		if !room.HasMember(connID) {
			return apperror.ErrNotInRoom
		}

		that.reset(room, entity.ActionForceResetGame)
		that.logger.Info("game force reset", "room", room.Code, "connID", connID)

		return nil
	})
}

func (that *GameManager) reset(room *entity.Room, action string) {
	room.Reset()

	members := room.Members()
	that.publish(members, action, struct{}{})
	that.publish(members, entity.ActionBoardReset, entity.BoardResetPayload{
		Board:    room.Board.Clone(),
		LastMove: nil,
	})
	that.publishState(room)

	that.playBot(room)
}

// LeaveRoom vacates the caller's seat or spectator place and tells the others.
func (that *GameManager) LeaveRoom(connID, code string) error {
	err := that.rooms.WithRoom(code, func(room *entity.Room) error {
		name := room.Name(connID)
		if _, ok := room.Vacate(connID); !ok {
			return apperror.ErrNotInRoom
		}

		that.publishState(room)
		that.notice(room, name+" left the room")

		return nil
	})

	that.rooms.Unbind(connID, code)

	return err
}

// Disconnect vacates whatever the connection held. Repeated calls do nothing.
func (that *GameManager) Disconnect(connID string) {
	log := that.logger.With("method", "Disconnect", "connID", connID)

	code, ok := that.rooms.RoomOf(connID)
	if !ok {
		return
	}

	err := that.rooms.WithRoom(code, func(room *entity.Room) error {
		side, ok := room.Vacate(connID)
		if !ok {
			return nil
		}

		that.publishState(room)
		if side.IsPlaying() && !room.Winner.IsTerminal() {
			that.publish(room.Members(), entity.ActionOpponentDisconnected, struct{}{})
		}

		return nil
	})
	if err != nil && !errors.Is(err, apperror.ErrRoomNotFound) {
		log.Error("failed to vacate room", "room", code, "error", err)
	}

	that.rooms.Unbind(connID, code)

	log.Info("connection left", "room", code)
}

// SendMessage posts a chat message under the caller's display name.
func (that *GameManager) SendMessage(connID, code, text string) error {
	text, err := validateMessage(text, that.limits.MaxMessageLength)
	if err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	return that.rooms.WithRoom(code, func(room *entity.Room) error {
		if !room.HasMember(connID) {
			return apperror.ErrNotInRoom
		}

		msg := entity.ChatMessage{
			Sender:    room.Name(connID),
			Content:   text,
			Timestamp: that.now(),
		}
		room.Chat.Append(msg)
		that.publish(room.Members(), entity.ActionChatMessage, msg)

		return nil
	})
}

// Typing relays the typing indicator to the other occupants.
func (that *GameManager) Typing(connID, code string, isTyping bool) error {
	return that.rooms.WithRoom(code, func(room *entity.Room) error {
		if !room.HasMember(connID) {
			return apperror.ErrNotInRoom
		}

		that.publish(others(room, connID), entity.ActionUserTyping, entity.TypingPayload{
			User:     room.Name(connID),
			IsTyping: isTyping,
		})

		return nil
	})
}

// RoomState returns the current snapshot of an existing room.
func (that *GameManager) RoomState(code string) (entity.RoomState, error) {
	var state entity.RoomState
	err := that.rooms.Peek(code, func(room *entity.Room) {
		state = room.Snapshot()
	})
	if err != nil {
		return entity.RoomState{}, fmt.Errorf("failed to get room %s: %w", code, err)
	}

	return state, nil
}

func (that *GameManager) notice(room *entity.Room, content string) {
	msg := entity.ChatMessage{
		Sender:    entity.SystemSender,
		Content:   content,
		Timestamp: that.now(),
	}
	room.Chat.Append(msg)
	that.publish(room.Members(), entity.ActionChatMessage, msg)
}

func (that *GameManager) publishState(room *entity.Room) {
	that.publish(room.Members(), entity.ActionRoomState, room.Snapshot())
}

func (that *GameManager) publish(recipients []string, action string, payload any) {
	if len(recipients) == 0 {
		return
	}

	that.publisher.Publish(recipients, entity.Event{Action: action, Payload: payload})
}

func others(room *entity.Room, connID string) []string {
	members := room.Members()
	out := members[:0]
	for _, member := range members {
		if member != connID {
			out = append(out, member)
		}
	}
	return out
}
