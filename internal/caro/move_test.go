package caro

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

func newTwoPlayerRoom() *entity.Room {
	room := entity.NewRoom("R1", entity.ChatCapacity)
	room.Assign("alice", "Alice")
	room.Assign("bob", "Bob")
	return room
}

func TestMakeMove(t *testing.T) {
	t.Run("Applies the move and passes the turn", func(t *testing.T) {
		// Given: a room with two players
		room := newTwoPlayerRoom()

		// When: X plays the centre
		result, err := MakeMove(room, "alice", 7, 7, entity.X)

		// Then: the stone is placed and O is to move
		require.NoError(t, err)
		assert.Equal(t, entity.WinnerNone, result.Winner)
		assert.Equal(t, entity.X, room.Board.At(7, 7))
		assert.Equal(t, entity.O, room.Turn)
		assert.Equal(t, &entity.Move{Row: 7, Col: 7, Player: entity.X}, room.LastMove)
		assert.Equal(t, 1, room.Moves)
	})

	t.Run("Rejections in order", func(t *testing.T) {
		tests := []struct {
			name    string
			prepare func(room *entity.Room)
			connID  string
			row     int
			col     int
			side    entity.Side
			wantErr error
		}{
			{
				name:    "finished game beats every other check",
				prepare: func(room *entity.Room) { room.Finish(entity.WinnerDraw, nil) },
				connID:  "stranger",
				row:     -1,
				col:     99,
				side:    entity.O,
				wantErr: apperror.ErrGameFinished,
			},
			{
				name:    "coordinates before ownership",
				connID:  "stranger",
				row:     15,
				col:     0,
				side:    entity.X,
				wantErr: apperror.ErrInvalidCoordinates,
			},
			{
				name:    "taken cell before ownership",
				prepare: func(room *entity.Room) { room.Board.Set(1, 1, entity.O) },
				connID:  "stranger",
				row:     1,
				col:     1,
				side:    entity.X,
				wantErr: apperror.ErrCellTaken,
			},
			{
				name:    "claiming the opponent's side",
				connID:  "bob",
				row:     0,
				col:     0,
				side:    entity.X,
				wantErr: apperror.ErrNotYourSide,
			},
			{
				name:    "spectator claiming a side",
				connID:  "carol",
				row:     0,
				col:     0,
				side:    entity.O,
				wantErr: apperror.ErrNotYourSide,
			},
			{
				name:    "own side out of turn",
				connID:  "bob",
				row:     0,
				col:     0,
				side:    entity.O,
				wantErr: apperror.ErrNotYourTurn,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Given: a prepared room
				room := newTwoPlayerRoom()
				room.Assign("carol", "Carol")
				if tt.prepare != nil {
					tt.prepare(room)
				}
				before := room.Snapshot()

				// When: the move is attempted
				_, err := MakeMove(room, tt.connID, tt.row, tt.col, tt.side)

				// Then: it is rejected with the expected reason and nothing changes
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				assert.Equal(t, before, room.Snapshot())
			})
		}
	})

	t.Run("Alice wins on row seven", func(t *testing.T) {
		// Given: Alice on X and Bob on O
		room := newTwoPlayerRoom()

		// When: they alternate until Alice has columns 7 to 11
		for col := 7; col <= 10; col++ {
			_, err := MakeMove(room, "alice", 7, col, entity.X)
			require.NoError(t, err)
			_, err = MakeMove(room, "bob", 0, col, entity.O)
			require.NoError(t, err)
		}
		result, err := MakeMove(room, "alice", 7, 11, entity.X)
		require.NoError(t, err)

		// Then: X wins with exactly those cells and further moves are refused
		assert.Equal(t, entity.WinnerX, result.Winner)
		assert.Equal(t, entity.WinnerX, room.Winner)
		assert.Len(t, room.WinCells, 5)
		for i, cell := range room.WinCells {
			assert.Equal(t, entity.Cell{Row: 7, Col: 7 + i}, cell)
		}
		assert.Equal(t, entity.Score{X: 1}, room.Score)

		_, err = MakeMove(room, "bob", 8, 8, entity.O)
		assert.EqualError(t, err, "game finished")
	})
}

func TestMakeTrustedMove(t *testing.T) {
	t.Run("Skips only the ownership check", func(t *testing.T) {
		// Given: a bot room with the human on X, X to move
		room := entity.NewRoom("B1", entity.ChatCapacity)
		room.Assign("alice", "Alice")
		room.SeatBot()

		// When: the trusted path is used out of turn
		_, err := MakeTrustedMove(room, 0, 0, entity.O)

		// Then: turn order still holds
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)

		// And: a client can never pose as the bot
		_, err = MakeMove(room, "", 0, 0, entity.O)
		require.ErrorIs(t, err, apperror.ErrNotYourSide)
	})

	t.Run("Applies in turn", func(t *testing.T) {
		room := entity.NewRoom("B1", entity.ChatCapacity)
		room.Assign("alice", "Alice")
		room.SeatBot()
		room.Turn = entity.O

		_, err := MakeTrustedMove(room, 3, 4, entity.O)

		require.NoError(t, err)
		assert.Equal(t, entity.O, room.Board.At(3, 4))
		assert.Equal(t, entity.X, room.Turn)
	})
}

func TestMakeMove_RandomGamesEndOnce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for game := 0; game < 50; game++ {
		// Given: a fresh room
		room := newTwoPlayerRoom()
		players := map[entity.Side]string{entity.X: "alice", entity.O: "bob"}

		// When: random legal moves are played until the game ends
		terminal := 0
		for !room.Winner.IsTerminal() {
			empty := room.Board.EmptyCells()
			require.NotEmpty(t, empty)

			cell := empty[rng.IntN(len(empty))]
			side := room.Turn

			result, err := MakeMove(room, players[side], cell.Row, cell.Col, side)
			require.NoError(t, err)
			if result.Winner.IsTerminal() {
				terminal++
			}
		}

		// Then: exactly one terminal result was produced and it is consistent
		assert.Equal(t, 1, terminal)
		switch room.Winner {
		case entity.WinnerX, entity.WinnerO:
			assert.GreaterOrEqual(t, len(room.WinCells), entity.WinLength)
		case entity.WinnerDraw:
			assert.Empty(t, room.WinCells)
			assert.True(t, room.Board.IsFull())
		default:
			t.Fatalf("unexpected winner %v", room.Winner)
		}
		assert.Equal(t, 1, room.Score.X+room.Score.O+room.Score.Draws)

		empty := room.Board.EmptyCells()
		if len(empty) > 0 {
			_, err := MakeMove(room, players[room.Turn], empty[0].Row, empty[0].Col, room.Turn)
			require.ErrorIs(t, err, apperror.ErrGameFinished)
		}
	}
}
