package battlefield

import (
	"fmt"

	"seabattle-local/types"
)

// MaxVesselLength is the longest vessel the game knows about.
const MaxVesselLength = 3

// Orientation is the axis a vessel extends along from its bow.
type Orientation int

const (
	// Horizontal vessels extend along the column axis.
	Horizontal Orientation = iota
	// Vertical vessels extend along the row axis.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Vessel is a ship occupying a straight run of cells starting at its bow.
type Vessel struct {
	bow         types.Coordinate
	length      int
	orientation Orientation
	remaining   int
}

// NewVessel creates an undamaged vessel.
func NewVessel(bow types.Coordinate, length int, orientation Orientation) (*Vessel, error) {
	if length < 1 || length > MaxVesselLength {
		return nil, fmt.Errorf("%w: length %d not in 1..%d", ErrInvalidVessel, length, MaxVesselLength)
	}
	if orientation != Horizontal && orientation != Vertical {
		return nil, fmt.Errorf("%w: unknown orientation %d", ErrInvalidVessel, orientation)
	}
	return &Vessel{
		bow:         bow,
		length:      length,
		orientation: orientation,
		remaining:   length,
	}, nil
}

// Bow returns the anchor coordinate.
func (v *Vessel) Bow() types.Coordinate { return v.bow }

// Len returns the number of cells the vessel occupies.
func (v *Vessel) Len() int { return v.length }

// Orientation returns the axis the vessel lies on.
func (v *Vessel) Orientation() Orientation { return v.orientation }

// Remaining returns the number of hits left before the vessel is destroyed.
func (v *Vessel) Remaining() int { return v.remaining }

// Destroyed reports whether every cell of the vessel has been hit.
func (v *Vessel) Destroyed() bool { return v.remaining == 0 }

// Dots returns the occupied coordinates, bow first.
func (v *Vessel) Dots() []types.Coordinate {
	dots := make([]types.Coordinate, v.length)
	for i := range dots {
		if v.orientation == Vertical {
			dots[i] = v.bow.Offset(i, 0)
		} else {
			dots[i] = v.bow.Offset(0, i)
		}
	}
	return dots
}

// Covers reports whether c is one of the vessel's cells.
func (v *Vessel) Covers(c types.Coordinate) bool {
	for _, d := range v.Dots() {
		if d == c {
			return true
		}
	}
	return false
}

// hit takes one point of damage and reports whether the vessel is now destroyed.
func (v *Vessel) hit() bool {
	if v.remaining > 0 {
		v.remaining--
	}
	return v.remaining == 0
}

func (v *Vessel) String() string {
	return fmt.Sprintf("vessel{bow=%s len=%d %s remaining=%d}", v.bow, v.length, v.orientation, v.remaining)
}
