package entity

// Side is a mark on the board. The zero value is an empty cell.
type Side int

const (
	Empty Side = iota
	X
	O
)

// Opponent returns the other playing side, Empty for Empty.
func (that Side) Opponent() Side {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// IsPlaying reports whether the side is X or O.
func (that Side) IsPlaying() bool {
	return that == X || that == O
}

func (that Side) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "-"
	}
}

// Winner is the outcome of a game: none yet, one side, or a draw.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerX
	WinnerO
	WinnerDraw
)

// WinnerOf maps a playing side to its winner value.
func WinnerOf(side Side) Winner {
	switch side {
	case X:
		return WinnerX
	case O:
		return WinnerO
	default:
		return WinnerNone
	}
}

// Side returns the winning side, Empty for none or draw.
func (that Winner) Side() Side {
	switch that {
	case WinnerX:
		return X
	case WinnerO:
		return O
	default:
		return Empty
	}
}

func (that Winner) IsTerminal() bool {
	return that != WinnerNone
}

func (that Winner) String() string {
	switch that {
	case WinnerX:
		return "X"
	case WinnerO:
		return "O"
	case WinnerDraw:
		return "draw"
	default:
		return "none"
	}
}
