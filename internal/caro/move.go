package caro

import (
	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

// MakeMove validates a client move and applies it to the room.
// Checks run in order and the first failure is returned unchanged.
func MakeMove(room *entity.Room, connID string, row, col int, side entity.Side) (Result, error) {
	if err := validateMove(room, row, col); err != nil {
		return Result{}, err
	}

	if !room.Occupant(side).IsConnection(connID) {
		return Result{}, apperror.ErrNotYourSide
	}

	if side != room.Turn {
		return Result{}, apperror.ErrNotYourTurn
	}

	return applyMove(room, row, col, side), nil
}

// MakeTrustedMove applies a move for the bot. Only the ownership check is skipped.
func MakeTrustedMove(room *entity.Room, row, col int, side entity.Side) (Result, error) {
	if err := validateMove(room, row, col); err != nil {
		return Result{}, err
	}

	if side != room.Turn {
		return Result{}, apperror.ErrNotYourTurn
	}

	return applyMove(room, row, col, side), nil
}

// validateMove - checks that do not depend on who is moving.
func validateMove(room *entity.Room, row, col int) error {
	if room.Winner.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if !room.Board.InBounds(row, col) {
		return apperror.ErrInvalidCoordinates
	}

	if room.Board.At(row, col) != entity.Empty {
		return apperror.ErrCellTaken
	}

	return nil
}

func applyMove(room *entity.Room, row, col int, side entity.Side) Result {
	room.Board.Set(row, col, side)
	room.LastMove = &entity.Move{Row: row, Col: col, Player: side}
	room.Moves++

	result := Evaluate(room.Board, row, col, side)
	if result.Winner.IsTerminal() {
		room.Finish(result.Winner, result.WinCells)
		return result
	}

	room.Turn = side.Opponent()

	return result
}
