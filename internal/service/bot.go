package service

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/caro-backend/internal/caro"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

const (
	DefaultSeekRun  = 3
	DefaultBlockRun = 5

	proximityRadius = 2
	opponentWeight  = 2
	ownWeight       = 1
)

type BotService interface {
	Decide(board entity.Board, botSide, opponentSide entity.Side) (entity.Cell, bool)
}

type botService struct {
	seekRun  int
	blockRun int

	randIntn func(n int) int
}

// NewBotService - seekRun and blockRun are the run lengths that trigger the attacking and blocking tiers.
func NewBotService(seekRun, blockRun int) BotService {
	if seekRun <= 0 {
		seekRun = DefaultSeekRun
	}
	if blockRun <= 0 {
		blockRun = DefaultBlockRun
	}

	return &botService{
		seekRun:  seekRun,
		blockRun: blockRun,
		randIntn: rand.IntN,
	}
}

// Decide picks the bot's next cell. It returns false only when the board is full.
func (that *botService) Decide(board entity.Board, botSide, opponentSide entity.Side) (entity.Cell, bool) {
	if cell, ok := firstReaching(board, botSide, that.seekRun); ok {
		return cell, true
	}

	if cell, ok := firstReaching(board, opponentSide, that.blockRun); ok {
		return cell, true
	}

	if cell, ok := bestNeighbourhood(board, botSide, opponentSide); ok {
		return cell, true
	}

	empty := board.EmptyCells()
	if len(empty) == 0 {
		return entity.Cell{}, false
	}

	return empty[that.randIntn(len(empty))], true //nolint: gosec // it's ok
}

// firstReaching returns the first empty cell, row-major, where a stone of side would make a run of at least length.
func firstReaching(board entity.Board, side entity.Side, length int) (entity.Cell, bool) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if board.At(row, col) != entity.Empty {
				continue
			}

			for _, axis := range caro.Axes {
				run := caro.RunLength(board, row, col, side, axis.Row, axis.Col) +
					caro.RunLength(board, row, col, side, -axis.Row, -axis.Col) + 1
				if run >= length {
					return entity.Cell{Row: row, Col: col}, true
				}
			}
		}
	}

	return entity.Cell{}, false
}

// bestNeighbourhood scores every empty cell by the stones around it; ties keep the first cell found.
func bestNeighbourhood(board entity.Board, botSide, opponentSide entity.Side) (entity.Cell, bool) {
	var best entity.Cell
	bestScore := 0

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if board.At(row, col) != entity.Empty {
				continue
			}

			if score := neighbourhoodScore(board, row, col, botSide, opponentSide); score > bestScore {
				best = entity.Cell{Row: row, Col: col}
				bestScore = score
			}
		}
	}

	return best, bestScore > 0
}

func neighbourhoodScore(board entity.Board, row, col int, botSide, opponentSide entity.Side) int {
	score := 0
	for dr := -proximityRadius; dr <= proximityRadius; dr++ {
		for dc := -proximityRadius; dc <= proximityRadius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}

			switch board.At(row+dr, col+dc) {
			case opponentSide:
				score += opponentWeight
			case botSide:
				score += ownWeight
			}
		}
	}
	return score
}
