package caro

import "github.com/rocketscienceinc/caro-backend/internal/entity"

// Axes are the four line directions: horizontal, vertical and both diagonals.
var Axes = [4]entity.Cell{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: 1, Col: -1},
}

// Result is the outcome of evaluating the last placed stone.
type Result struct {
	Winner   entity.Winner
	WinCells []entity.Cell
}

// Evaluate checks whether the stone of side at (row, col) ends the game.
// The whole contiguous run is reported, so a run of six yields six cells.
func Evaluate(board entity.Board, row, col int, side entity.Side) Result {
	for _, axis := range Axes {
		run := Run(board, row, col, side, axis)
		if len(run) >= entity.WinLength {
			return Result{Winner: entity.WinnerOf(side), WinCells: run}
		}
	}

	if board.IsFull() {
		return Result{Winner: entity.WinnerDraw}
	}

	return Result{Winner: entity.WinnerNone}
}

// Run returns the ordered contiguous cells of side through (row, col) along axis.
// The origin is included whatever it holds.
func Run(board entity.Board, row, col int, side entity.Side, axis entity.Cell) []entity.Cell {
	back := RunLength(board, row, col, side, -axis.Row, -axis.Col)
	forward := RunLength(board, row, col, side, axis.Row, axis.Col)

	cells := make([]entity.Cell, 0, back+forward+1)
	for step := back; step >= -forward; step-- {
		cells = append(cells, entity.Cell{Row: row - step*axis.Row, Col: col - step*axis.Col})
	}

	return cells
}

// RunLength counts stones of side walking from (row, col) in direction (dr, dc), origin excluded.
func RunLength(board entity.Board, row, col int, side entity.Side, dr, dc int) int {
	count := 0
	for r, c := row+dr, col+dc; board.InBounds(r, c) && board.At(r, c) == side; r, c = r+dr, c+dc {
		count++
	}
	return count
}
