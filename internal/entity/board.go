package entity

const (
	BoardSize = 15
	WinLength = 5
)

// Cell addresses a board square.
type Cell struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// Board is a square grid stored row-major.
type Board struct {
	Size  int    `json:"size"`
	Cells []Side `json:"cells"`
}

func NewBoard(size int) Board {
	if size <= 0 {
		size = BoardSize
	}

	return Board{
		Size:  size,
		Cells: make([]Side, size*size),
	}
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.Size && col >= 0 && col < that.Size
}

// At returns the side at (row, col); out-of-bounds squares read as Empty.
func (that Board) At(row, col int) Side {
	if !that.InBounds(row, col) {
		return Empty
	}
	return that.Cells[row*that.Size+col]
}

func (that Board) Set(row, col int, side Side) {
	that.Cells[row*that.Size+col] = side
}

func (that Board) IsFull() bool {
	for _, cell := range that.Cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

// EmptyCells lists every empty square in row-major order.
func (that Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, len(that.Cells))
	for i, cell := range that.Cells {
		if cell == Empty {
			cells = append(cells, Cell{Row: i / that.Size, Col: i % that.Size})
		}
	}
	return cells
}

func (that Board) Clone() Board {
	cells := make([]Side, len(that.Cells))
	copy(cells, that.Cells)
	return Board{Size: that.Size, Cells: cells}
}

func (that Board) Clear() {
	for i := range that.Cells {
		that.Cells[i] = Empty
	}
}
