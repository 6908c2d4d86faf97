package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

func newTestBot(randIntn func(int) int) *botService {
	return &botService{
		seekRun:  DefaultSeekRun,
		blockRun: DefaultBlockRun,
		randIntn: randIntn,
	}
}

func TestBotService_Decide(t *testing.T) {
	t.Run("Extends its own run first", func(t *testing.T) {
		// Given: two O stones side by side and a threatening X line
		board := entity.NewBoard(entity.BoardSize)
		board.Set(5, 5, entity.O)
		board.Set(5, 6, entity.O)
		for col := 0; col < 4; col++ {
			board.Set(10, col, entity.X)
		}

		// When: the bot on O decides
		cell, ok := newTestBot(nil).Decide(board, entity.O, entity.X)

		// Then: it picks the first cell that makes a run of three
		require.True(t, ok)
		assert.Equal(t, entity.Cell{Row: 5, Col: 4}, cell)
	})

	t.Run("Blocks an open four", func(t *testing.T) {
		// Given: X has four in a row and O has scattered stones
		board := entity.NewBoard(entity.BoardSize)
		for col := 3; col < 7; col++ {
			board.Set(8, col, entity.X)
		}
		board.Set(0, 0, entity.O)

		// When: the bot decides
		cell, ok := newTestBot(nil).Decide(board, entity.O, entity.X)

		// Then: it takes the first cell that stops five
		require.True(t, ok)
		assert.Equal(t, entity.Cell{Row: 8, Col: 2}, cell)
	})

	t.Run("Plays next to stones by proximity", func(t *testing.T) {
		// Given: a single X stone in the middle
		board := entity.NewBoard(entity.BoardSize)
		board.Set(7, 7, entity.X)

		// When: the bot decides
		cell, ok := newTestBot(nil).Decide(board, entity.O, entity.X)

		// Then: the first neighbour in row-major order wins the tie
		require.True(t, ok)
		assert.Equal(t, entity.Cell{Row: 5, Col: 5}, cell)
	})

	t.Run("Proximity prefers opponent stones", func(t *testing.T) {
		board := entity.NewBoard(entity.BoardSize)
		board.Set(0, 0, entity.O)
		board.Set(10, 10, entity.X)
		board.Set(10, 12, entity.X)

		cell, ok := newTestBot(nil).Decide(board, entity.O, entity.X)

		require.True(t, ok)
		assert.Equal(t, entity.Cell{Row: 8, Col: 10}, cell)
	})

	t.Run("Falls back to a random empty cell", func(t *testing.T) {
		// Given: an empty board and a rigged random source
		board := entity.NewBoard(entity.BoardSize)
		var asked int
		bot := newTestBot(func(n int) int {
			asked = n
			return n - 1
		})

		// When: the bot decides
		cell, ok := bot.Decide(board, entity.O, entity.X)

		// Then: it picks from all empty cells
		require.True(t, ok)
		assert.Equal(t, entity.BoardSize*entity.BoardSize, asked)
		assert.Equal(t, entity.Cell{Row: 14, Col: 14}, cell)
	})

	t.Run("Nothing on a full board", func(t *testing.T) {
		board := entity.NewBoard(entity.BoardSize)
		for i := range board.Cells {
			board.Cells[i] = entity.X
		}

		_, ok := NewBotService(0, 0).Decide(board, entity.O, entity.X)

		assert.False(t, ok)
	})

	t.Run("Always moves while a cell is empty", func(t *testing.T) {
		// Given: a board filled except one cell
		board := entity.NewBoard(entity.BoardSize)
		for i := range board.Cells {
			if (i/entity.BoardSize+i%entity.BoardSize)%2 == 0 {
				board.Cells[i] = entity.X
			} else {
				board.Cells[i] = entity.O
			}
		}
		board.Set(14, 3, entity.Empty)

		// When: the bot decides
		cell, ok := NewBotService(DefaultSeekRun, DefaultBlockRun).Decide(board, entity.O, entity.X)

		// Then: it finds the last cell
		require.True(t, ok)
		assert.Equal(t, entity.Cell{Row: 14, Col: 3}, cell)
	})
}
