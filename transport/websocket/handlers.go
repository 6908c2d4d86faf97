package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

var errMalformedPayload = errors.New("malformed payload")

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %w", errMalformedPayload, err)
	}

	return nil
}

func (that *Server) handleCreateRoom(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	_, _, err := that.game.CreateRoom(c.id, req.Room, req.PlayerName)
	return err
}

func (that *Server) handleCreateBotRoom(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	_, _, err := that.game.CreateBotRoom(c.id, req.Room, req.PlayerName)
	return err
}

func (that *Server) handleJoinRoom(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	_, err := that.game.JoinRoom(c.id, req.Room, req.PlayerName)
	return err
}

func (that *Server) handleMove(c *client, payload json.RawMessage) error {
	var req MoveRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.Move(c.id, req.Room, req.Row, req.Col, req.Player)
}

func (that *Server) handleRequestRematch(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.RequestRematch(c.id, req.Room)
}

func (that *Server) handleAcceptRematch(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.AcceptRematch(c.id, req.Room)
}

func (that *Server) handleDeclineRematch(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.DeclineRematch(c.id, req.Room)
}

func (that *Server) handleForceReset(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.ForceReset(c.id, req.Room)
}

func (that *Server) handleLeaveRoom(c *client, payload json.RawMessage) error {
	var req RoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.LeaveRoom(c.id, req.Room)
}

func (that *Server) handleSendMessage(c *client, payload json.RawMessage) error {
	var req ChatRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.SendMessage(c.id, req.Room, req.Content)
}

func (that *Server) handleTyping(c *client, payload json.RawMessage) error {
	var req TypingRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	return that.game.Typing(c.id, req.Room, req.IsTyping)
}

// handleError reports input problems to the client; unknown rooms and move rejections stay silent here.
func (that *Server) handleError(c *client, action string, err error) {
	log := that.logger.With("method", "handleError", "connID", c.id, "action", action)

	switch {
	case errors.Is(err, errMalformedPayload):
		that.sendError(c, action, errMalformedPayload.Error())
	case apperror.IsValidation(err):
		that.sendError(c, action, validationMessage(err))
	case apperror.IsMoveRejection(err):
		log.Debug("move rejected", "error", err)
	case errors.Is(err, apperror.ErrRoomNotFound), errors.Is(err, apperror.ErrNotInRoom):
		log.Debug("ignored", "error", err)
	default:
		log.Error("failed to process message", "error", err)
	}
}

// validationMessage returns the sentinel text without the wrapping context.
func validationMessage(err error) string {
	for _, sentinel := range []error{
		apperror.ErrRoomRequired,
		apperror.ErrInvalidRoomCode,
		apperror.ErrNameRequired,
		apperror.ErrNameTooLong,
		apperror.ErrEmptyMessage,
		apperror.ErrMessageTooLong,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func (that *Server) sendError(c *client, action, message string) {
	that.hub.Publish([]string{c.id}, entity.Event{
		Action:  entity.ActionError,
		Payload: ErrorPayload{Action: action, Message: message},
	})
}
