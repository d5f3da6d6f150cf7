package battlefield

import "errors"

// Placement errors returned by AddVessel.
var (
	ErrOutOfBounds   = errors.New("vessel does not fit on the board")
	ErrConflict      = errors.New("vessel touches or overlaps another vessel")
	ErrInvalidVessel = errors.New("invalid vessel")
)

// Shot errors returned by Shot. Both are recoverable: the shooter simply picks again.
var (
	ErrOutOfRange      = errors.New("you are trying to shoot off the board")
	ErrAlreadyTargeted = errors.New("you have already fired at this cell")
)

// IsShotRejection reports whether err means the shot was refused without changing the board.
func IsShotRejection(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrAlreadyTargeted)
}

// IsPlacementRejection reports whether err means a vessel could not be placed where asked.
func IsPlacementRejection(err error) bool {
	return errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrConflict)
}
