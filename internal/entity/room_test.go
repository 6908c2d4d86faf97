package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_Assign(t *testing.T) {
	t.Run("Seats X, then O, then spectators", func(t *testing.T) {
		// Given: a fresh room
		room := NewRoom("R1", ChatCapacity)

		// When: three connections join
		first := room.Assign("c1", "Alice")
		second := room.Assign("c2", "Bob")
		third := room.Assign("c3", "Carol")

		// Then: X and O are taken in order and the third watches
		assert.Equal(t, X, first)
		assert.Equal(t, O, second)
		assert.Equal(t, Empty, third)
		assert.Equal(t, []string{"c1", "c2", "c3"}, room.Members())
		assert.Equal(t, "Alice", room.PlayerName(X))
		assert.Equal(t, "Bob", room.PlayerName(O))
	})

	t.Run("Joining twice keeps the seat and renames", func(t *testing.T) {
		// Given: a room where c1 holds X
		room := NewRoom("R1", ChatCapacity)
		room.Assign("c1", "Alice")

		// When: c1 joins again under another name
		side := room.Assign("c1", "Alicia")

		// Then: c1 still holds X only once
		assert.Equal(t, X, side)
		assert.Equal(t, "Alicia", room.PlayerName(X))
		assert.False(t, room.Occupant(O).IsAssigned())
		assert.Len(t, room.Members(), 1)
	})
}

func TestRoom_SeatBot(t *testing.T) {
	// Given: a room with a human on X
	room := NewRoom("B1", ChatCapacity)
	room.Assign("c1", "Alice")

	// When: the bot is seated
	side := room.SeatBot()

	// Then: the bot holds O, is named, and does not keep the room alive
	assert.Equal(t, O, side)
	assert.Equal(t, O, room.BotSide())
	assert.Equal(t, BotName, room.PlayerName(O))
	assert.Equal(t, Empty, room.SideOf(""))

	room.Vacate("c1")
	assert.True(t, room.IsEmpty())
}

func TestRoom_SeatBotOnce(t *testing.T) {
	// Given: a bot room whose human left X
	room := NewRoom("B1", ChatCapacity)
	room.Assign("c1", "Alice")
	room.SeatBot()
	room.Vacate("c1")

	// When: the bot is seated again
	side := room.SeatBot()

	// Then: nothing changes, X stays free for a human
	assert.Equal(t, Empty, side)
	assert.Equal(t, O, room.BotSide())
	assert.False(t, room.Occupant(X).IsAssigned())
}

func TestRoom_Vacate(t *testing.T) {
	t.Run("Frees the seat and the rematch intent", func(t *testing.T) {
		// Given: two players, X wants a rematch
		room := NewRoom("R1", ChatCapacity)
		room.Assign("c1", "Alice")
		room.Assign("c2", "Bob")
		room.WantRematch(X)

		// When: X leaves
		side, ok := room.Vacate("c1")

		// Then: X is free and no intent remains
		require.True(t, ok)
		assert.Equal(t, X, side)
		assert.False(t, room.Occupant(X).IsAssigned())
		assert.False(t, room.HasRematchIntents())
		assert.False(t, room.HasMember("c1"))
	})

	t.Run("Unknown connection is a no-op", func(t *testing.T) {
		room := NewRoom("R1", ChatCapacity)
		room.Assign("c1", "Alice")

		side, ok := room.Vacate("ghost")

		assert.False(t, ok)
		assert.Equal(t, Empty, side)
		assert.Equal(t, X, room.SideOf("c1"))
	})
}

func TestRoom_Rematch(t *testing.T) {
	t.Run("Needs both assigned sides", func(t *testing.T) {
		// Given: a room with only X seated
		room := NewRoom("R1", ChatCapacity)
		room.Assign("c1", "Alice")

		// When: X asks for a rematch
		room.WantRematch(X)

		// Then: there is nobody to agree with
		assert.False(t, room.RematchAgreed())
	})

	t.Run("Bot always consents", func(t *testing.T) {
		room := NewRoom("B1", ChatCapacity)
		room.Assign("c1", "Alice")
		room.SeatBot()

		assert.False(t, room.RematchAgreed())

		room.WantRematch(X)

		assert.True(t, room.RematchAgreed())
	})

	t.Run("Both humans agree", func(t *testing.T) {
		room := NewRoom("R1", ChatCapacity)
		room.Assign("c1", "Alice")
		room.Assign("c2", "Bob")

		room.WantRematch(O)
		assert.False(t, room.RematchAgreed())

		room.WantRematch(X)
		assert.True(t, room.RematchAgreed())
	})
}

func TestRoom_FinishAndReset(t *testing.T) {
	// Given: a finished game with chat and a score
	room := NewRoom("R1", ChatCapacity)
	room.Assign("c1", "Alice")
	room.Assign("c2", "Bob")
	room.Board.Set(7, 7, X)
	room.LastMove = &Move{Row: 7, Col: 7, Player: X}
	room.Moves = 1
	room.Turn = O
	room.Finish(WinnerX, []Cell{{Row: 7, Col: 7}})
	room.Chat.Append(ChatMessage{Sender: "Alice", Content: "gg", Timestamp: time.Now()})
	room.WantRematch(X)

	// When: the room is reset
	room.Reset()

	// Then: the game state is fresh but seats, chat and score are kept
	state := room.Snapshot()
	assert.Equal(t, WinnerNone, state.Winner)
	assert.Equal(t, X, state.Turn)
	assert.Nil(t, state.LastMove)
	assert.Empty(t, state.WinCells)
	assert.Len(t, room.Board.EmptyCells(), BoardSize*BoardSize)
	assert.Equal(t, Score{X: 1}, state.Score)
	assert.Equal(t, "Alice", state.Players["X"])
	assert.Equal(t, "Bob", state.Players["O"])
	assert.Equal(t, 1, room.Chat.Len())
	assert.False(t, room.HasRematchIntents())
}

func TestRoom_Snapshot(t *testing.T) {
	// Given: a room with one stone and a spectator
	room := NewRoom("R1", ChatCapacity)
	room.Assign("c1", "Alice")
	room.Assign("c2", "Bob")
	room.Assign("c3", "Carol")
	room.Board.Set(0, 0, X)

	// When: a snapshot is taken and the room changes afterwards
	state := room.Snapshot()
	room.Board.Set(1, 1, O)

	// Then: the snapshot is not affected
	assert.Equal(t, X, state.Board.At(0, 0))
	assert.Equal(t, Empty, state.Board.At(1, 1))
	assert.Equal(t, 1, state.Viewers)
}

func TestRoom_Result(t *testing.T) {
	room := NewRoom("R1", ChatCapacity)
	room.Assign("c1", "Alice")
	room.SeatBot()
	room.Moves = 9
	room.Finish(WinnerO, []Cell{{Row: 0, Col: 0}})

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	result := room.Result(at)

	assert.Equal(t, Result{
		Room:       "R1",
		Winner:     WinnerO,
		WinnerName: BotName,
		PlayerX:    "Alice",
		PlayerO:    BotName,
		Moves:      9,
		FinishedAt: at,
	}, result)
}
