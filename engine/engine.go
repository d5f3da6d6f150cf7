// Package engine runs a game of sea battle between two agents.
package engine

import (
	"context"
	"time"

	"seabattle-local/battlefield"
	"seabattle-local/placement"
	"seabattle-local/types"
)

// Agent proposes shots for one side.
type Agent interface {
	// Name is shown in messages and logs.
	Name() string

	// NextTarget returns the coordinate to fire at on the opponent's board.
	// The view is the opponent board as the agent may see it. Returning an
	// error ends the game loop; invalid coordinates should be returned as
	// coordinates and left to the battlefield to reject.
	NextTarget(ctx context.Context, view *types.BoardView) (types.Coordinate, error)
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	GridSize      int           // side length of both boards
	Fleet         []int         // vessel lengths placed on each board
	MaxAttempts   int           // placement tries per board before starting over
	ComputerDelay time.Duration // pause before the computer fires
	RevealEnemy   bool          // show the computer's fleet from the start
	Seed          int64         // 0 picks a seed from the clock
}

// WinThreshold is the number of sunk vessels that ends the game.
func (c GameConfig) WinThreshold() int {
	return len(c.Fleet)
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		GridSize:      battlefield.DefaultSize,
		Fleet:         append([]int(nil), placement.DefaultFleet...),
		MaxAttempts:   placement.DefaultMaxAttempts,
		ComputerDelay: 350 * time.Millisecond,
	}
}
