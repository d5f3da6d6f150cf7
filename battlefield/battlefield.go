// Package battlefield models one player's grid, the vessels on it and the
// shots fired against it.
package battlefield

import (
	"fmt"

	"seabattle-local/types"
)

// DefaultSize is the side length of a standard board.
const DefaultSize = 6

// MaxSize is the largest board side length the game supports.
const MaxSize = 10

// Outcome is the result of a valid shot.
type Outcome int

const (
	Miss Outcome = iota
	Hit
	Sunk
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Sunk:
		return "sunk"
	default:
		return "miss"
	}
}

// ShotResult describes what a valid shot did.
type ShotResult struct {
	Target  types.Coordinate
	Outcome Outcome
	// Vessel is the vessel that was hit, nil on a miss.
	Vessel *Vessel
}

// ShouldContinue reports whether the shooter keeps the turn.
// Only a hit that leaves the vessel afloat grants another shot.
func (r ShotResult) ShouldContinue() bool {
	return r.Outcome == Hit
}

// neighborhood is the 3x3 block around a cell, the cell included.
var neighborhood = [9][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Battlefield is a square grid owned by one side.
type Battlefield struct {
	size      int
	hidden    bool
	grid      [][]types.CellState
	vessels   []*Vessel
	busy      map[types.Coordinate]struct{}
	targeted  map[types.Coordinate]struct{}
	destroyed int
}

// New creates an empty battlefield. Hidden only affects Snapshot.
func New(size int, hidden bool) *Battlefield {
	grid := make([][]types.CellState, size)
	for i := range grid {
		grid[i] = make([]types.CellState, size)
	}
	return &Battlefield{
		size:     size,
		hidden:   hidden,
		grid:     grid,
		busy:     make(map[types.Coordinate]struct{}),
		targeted: make(map[types.Coordinate]struct{}),
	}
}

// Size returns the side length of the grid.
func (b *Battlefield) Size() int { return b.size }

// Hidden reports whether renderers must conceal un-hit vessels.
func (b *Battlefield) Hidden() bool { return b.hidden }

// SetHidden changes how Snapshot presents un-hit vessels.
func (b *Battlefield) SetHidden(hidden bool) { b.hidden = hidden }

// DestroyedCount returns the number of vessels sunk so far.
func (b *Battlefield) DestroyedCount() int { return b.destroyed }

// Vessels returns the placed vessels in placement order.
func (b *Battlefield) Vessels() []*Vessel {
	out := make([]*Vessel, len(b.vessels))
	copy(out, b.vessels)
	return out
}

// Cell returns the raw state of c. It ignores Hidden.
func (b *Battlefield) Cell(c types.Coordinate) types.CellState {
	if !c.Within(b.size) {
		return types.CellEmpty
	}
	return b.grid[c.Row][c.Col]
}

// Targeted reports whether c has already been fired at.
func (b *Battlefield) Targeted(c types.Coordinate) bool {
	_, ok := b.targeted[c]
	return ok
}

// AddVessel places v on the grid. It fails with ErrOutOfBounds when any cell
// of v is off the grid, and with ErrConflict when any cell is busy or touches
// an already placed vessel, diagonals included.
func (b *Battlefield) AddVessel(v *Vessel) error {
	dots := v.Dots()
	for _, d := range dots {
		if !d.Within(b.size) {
			return fmt.Errorf("%w: %s", ErrOutOfBounds, d)
		}
	}
	for _, d := range dots {
		if _, ok := b.busy[d]; ok || b.touchesVessel(d) {
			return fmt.Errorf("%w: %s", ErrConflict, d)
		}
	}

	for _, d := range dots {
		b.grid[d.Row][d.Col] = types.CellOccupied
		b.busy[d] = struct{}{}
	}
	b.vessels = append(b.vessels, v)
	b.contour(v, false)
	return nil
}

// touchesVessel checks occupancy directly so placement stays safe after ResetTurnState.
func (b *Battlefield) touchesVessel(c types.Coordinate) bool {
	for _, n := range neighborhood {
		if b.Cell(c.Offset(n[0], n[1])) == types.CellOccupied {
			return true
		}
	}
	return false
}

// contour marks the ring around v as busy. When reveal is set the ring is
// also painted as misses so the shooter can see it.
func (b *Battlefield) contour(v *Vessel, reveal bool) {
	for _, d := range v.Dots() {
		for _, n := range neighborhood {
			cur := d.Offset(n[0], n[1])
			if !cur.Within(b.size) {
				continue
			}
			if reveal && b.grid[cur.Row][cur.Col] == types.CellEmpty {
				b.grid[cur.Row][cur.Col] = types.CellMiss
			}
			b.busy[cur] = struct{}{}
		}
	}
}

// ResetTurnState drops the placement bookkeeping. Call it once the fleet is placed.
func (b *Battlefield) ResetTurnState() {
	b.busy = make(map[types.Coordinate]struct{})
}

// Shot fires at target. It fails with ErrOutOfRange when target is off the
// grid and with ErrAlreadyTargeted when the cell was fired at before or was
// revealed as empty water around a sunk vessel. A failed shot changes nothing.
func (b *Battlefield) Shot(target types.Coordinate) (ShotResult, error) {
	if !target.Within(b.size) {
		return ShotResult{}, fmt.Errorf("%w: %s", ErrOutOfRange, target)
	}
	if b.Targeted(target) || b.grid[target.Row][target.Col] == types.CellMiss {
		return ShotResult{}, fmt.Errorf("%w: %s", ErrAlreadyTargeted, target)
	}
	b.targeted[target] = struct{}{}

	for _, v := range b.vessels {
		if v.Destroyed() || !v.Covers(target) {
			continue
		}
		b.grid[target.Row][target.Col] = types.CellHit
		if !v.hit() {
			return ShotResult{Target: target, Outcome: Hit, Vessel: v}, nil
		}
		b.destroyed++
		b.contour(v, true)
		return ShotResult{Target: target, Outcome: Sunk, Vessel: v}, nil
	}

	b.grid[target.Row][target.Col] = types.CellMiss
	return ShotResult{Target: target, Outcome: Miss}, nil
}

// Snapshot copies the grid for rendering. Un-hit vessel cells are reported as
// empty when the battlefield is hidden.
func (b *Battlefield) Snapshot() *types.BoardView {
	return b.View(b.hidden)
}

// View is Snapshot with the concealment chosen by the caller, for agents
// that must never see the opponent's fleet.
func (b *Battlefield) View(conceal bool) *types.BoardView {
	view := types.NewBoardView(b.size)
	view.Hidden = conceal
	view.Destroyed = b.destroyed
	for r := range b.grid {
		for c, cell := range b.grid[r] {
			if conceal && cell == types.CellOccupied {
				cell = types.CellEmpty
			}
			view.Cells[r][c] = cell
		}
	}
	return view
}
