// Package types contains shared data structures for seabattle-local.
package types

import (
	"encoding/json"
	"fmt"
)

// CellState is what a single grid cell shows.
type CellState int

const (
	CellEmpty CellState = iota
	CellOccupied
	CellHit
	CellMiss
)

func (c CellState) String() string {
	switch c {
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "empty"
	}
}

// Side identifies one of the two players.
type Side int

const (
	SideUser Side = iota
	SideComputer
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideUser {
		return SideComputer
	}
	return SideUser
}

func (s Side) String() string {
	if s == SideComputer {
		return "computer"
	}
	return "user"
}

// Coordinate is a position on a battlefield. Row grows downwards, Col to the right.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At is shorthand for Coordinate{Row: row, Col: col}.
func At(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// Offset returns the coordinate shifted by dr rows and dc columns.
func (c Coordinate) Offset(dr, dc int) Coordinate {
	return Coordinate{Row: c.Row + dr, Col: c.Col + dc}
}

// Within reports whether c lies on a size x size grid.
func (c Coordinate) Within(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// UnmarshalJSON allows a Coordinate to be unmarshaled from a JSON array [row, col]
// as well as from an object.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err == nil {
		if len(v) != 2 {
			return fmt.Errorf("coordinate needs 2 values, got %d", len(v))
		}
		c.Row, c.Col = v[0], v[1]
		return nil
	}
	type plain Coordinate
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Coordinate(p)
	return nil
}

// BoardView is a read-only snapshot of a battlefield for renderers.
// Cells is indexed as Cells[row][col]. When Hidden is set, un-hit ship
// cells have already been replaced by CellEmpty.
type BoardView struct {
	Size      int           `json:"size"`
	Hidden    bool          `json:"hidden"`
	Destroyed int           `json:"destroyed"`
	Cells     [][]CellState `json:"cells"`
}

// Cell returns the state at c, or CellEmpty when c is off the grid.
func (b *BoardView) Cell(c Coordinate) CellState {
	if b == nil || !c.Within(b.Size) {
		return CellEmpty
	}
	return b.Cells[c.Row][c.Col]
}

// NewBoardView creates an empty view of the given size.
func NewBoardView(size int) *BoardView {
	cells := make([][]CellState, size)
	for i := range cells {
		cells[i] = make([]CellState, size)
	}
	return &BoardView{Size: size, Cells: cells}
}
