package ui

import (
	"context"

	"seabattle-local/types"
)

// TargetAgent is the user's engine.Agent in the terminal UI. The engine
// goroutine blocks in NextTarget until a key press submits a cell.
type TargetAgent struct {
	targets chan types.Coordinate
}

func NewTargetAgent() *TargetAgent {
	return &TargetAgent{targets: make(chan types.Coordinate)}
}

func (a *TargetAgent) Name() string { return "user" }

// Submit hands c to a waiting NextTarget call. It never blocks and
// reports false when the engine is not waiting for the user.
func (a *TargetAgent) Submit(c types.Coordinate) bool {
	select {
	case a.targets <- c:
		return true
	default:
		return false
	}
}

func (a *TargetAgent) NextTarget(ctx context.Context, _ *types.BoardView) (types.Coordinate, error) {
	select {
	case <-ctx.Done():
		return types.Coordinate{}, ctx.Err()
	case c := <-a.targets:
		return c, nil
	}
}
