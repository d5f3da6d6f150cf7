// Package randombot provides the scripted computer opponent: it fires at
// uniformly random cells and leaves repeats for the battlefield to reject.
package randombot

import (
	"context"
	"time"

	"seabattle-local/placement"
	"seabattle-local/types"
)

// Bot is an engine.Agent that shoots at random.
type Bot struct {
	size  int
	rnd   placement.Rand
	delay time.Duration

	// marked cells in the view of the previous call; -1 before the first
	marked int

	// Announce, when set, is called with every proposed target.
	Announce func(types.Coordinate)
}

// New creates a bot for size x size boards. A positive delay makes the bot
// pause once per shot so a human can follow the game; retries after a
// rejected target are immediate.
func New(size int, rnd placement.Rand, delay time.Duration) *Bot {
	return &Bot{size: size, rnd: rnd, delay: delay, marked: -1}
}

// Name returns the display name.
func (b *Bot) Name() string { return "computer" }

// NextTarget picks a random cell on the board.
func (b *Bot) NextTarget(ctx context.Context, view *types.BoardView) (types.Coordinate, error) {
	n := markedCells(view)
	retry := n >= 0 && n == b.marked
	b.marked = n
	if b.delay > 0 && !retry {
		t := time.NewTimer(b.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return types.Coordinate{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return types.Coordinate{}, err
	}

	size := b.size
	if view != nil && view.Size > 0 {
		size = view.Size
	}
	c := types.At(b.rnd.Intn(size), b.rnd.Intn(size))
	if b.Announce != nil {
		b.Announce(c)
	}
	return c, nil
}

// markedCells counts the shot cells of view. A rejected target leaves the
// view unchanged, so an equal count means the previous proposal failed.
func markedCells(view *types.BoardView) int {
	if view == nil {
		return -1
	}
	n := 0
	for _, row := range view.Cells {
		for _, c := range row {
			if c != types.CellEmpty {
				n++
			}
		}
	}
	return n
}
