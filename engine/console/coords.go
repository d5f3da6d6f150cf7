// Package console implements line-based play: reading "row col" targets
// from a reader and printing boards as text.
package console

import (
	"errors"
	"strconv"
	"strings"

	"seabattle-local/types"
)

// Input errors. The message is shown to the player as-is.
var (
	ErrCoordinateCount = errors.New("enter 2 coordinates")
	ErrNotNumbers      = errors.New("enter numbers")
)

// ParseTarget reads "row col" into a coordinate. Range checks are left to the
// battlefield, so any pair of non-negative integers is accepted here.
func ParseTarget(line string) (types.Coordinate, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return types.Coordinate{}, ErrCoordinateCount
	}
	var nums [2]int
	for i, f := range fields {
		if !isDigits(f) {
			return types.Coordinate{}, ErrNotNumbers
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return types.Coordinate{}, ErrNotNumbers
		}
		nums[i] = n
	}
	return types.At(nums[0], nums[1]), nil
}

// FormatTarget is the inverse of ParseTarget.
func FormatTarget(c types.Coordinate) string {
	return strconv.Itoa(c.Row) + " " + strconv.Itoa(c.Col)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
