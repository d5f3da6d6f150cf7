// Package placement fills a battlefield with a fleet at random positions.
package placement

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"seabattle-local/battlefield"
	"seabattle-local/logging"
	"seabattle-local/types"
)

// DefaultMaxAttempts bounds the placement tries spent on one board.
const DefaultMaxAttempts = 2000

// DefaultFleet is one 3-cell, two 2-cell and four 1-cell vessels.
var DefaultFleet = []int{3, 2, 2, 1, 1, 1, 1}

// ErrPlacementExhausted means the attempt budget ran out before the fleet was placed.
var ErrPlacementExhausted = errors.New("placement attempts exhausted")

// Rand is the subset of *rand.Rand the planner needs.
type Rand interface {
	Intn(n int) int
}

// Planner places a fixed fleet on fresh battlefields.
type Planner struct {
	size        int
	fleet       []int
	maxAttempts int
	rnd         Rand
	logger      *log.Logger
}

// Option customizes a Planner.
type Option func(*Planner)

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithLogger sets the logger used for exhausted boards.
func WithLogger(l *log.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// NewPlanner creates a planner for size x size boards holding fleet.
func NewPlanner(size int, fleet []int, rnd Rand, opts ...Option) *Planner {
	p := &Planner{
		size:        size,
		fleet:       append([]int(nil), fleet...),
		maxAttempts: DefaultMaxAttempts,
		rnd:         rnd,
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attempt tries to place the whole fleet on one board. Bows are sampled from
// 0..size inclusive; the off-grid ones are rejected by AddVessel like any
// other bad position. The returned board has its placement bookkeeping reset.
func (p *Planner) Attempt() (*battlefield.Battlefield, error) {
	board := battlefield.New(p.size, false)
	attempts := 0
	for _, length := range p.fleet {
		for {
			attempts++
			if attempts > p.maxAttempts {
				return nil, fmt.Errorf("%w: %d tries, %d of %d vessels placed",
					ErrPlacementExhausted, p.maxAttempts, len(board.Vessels()), len(p.fleet))
			}
			v, err := battlefield.NewVessel(
				types.At(p.rnd.Intn(p.size+1), p.rnd.Intn(p.size+1)),
				length,
				battlefield.Orientation(p.rnd.Intn(2)),
			)
			if err != nil {
				return nil, err
			}
			err = board.AddVessel(v)
			if err == nil {
				break
			}
			if !battlefield.IsPlacementRejection(err) {
				return nil, err
			}
		}
	}
	board.ResetTurnState()
	return board, nil
}

// Generate calls Attempt until a board is produced or ctx is done.
func (p *Planner) Generate(ctx context.Context) (*battlefield.Battlefield, error) {
	for boards := 1; ; boards++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate board: %w", err)
		}
		board, err := p.Attempt()
		if err == nil {
			p.logger.Debug("board ready", "boards", boards)
			return board, nil
		}
		if !errors.Is(err, ErrPlacementExhausted) {
			return nil, err
		}
		p.logger.Debug("discarding board", "err", err)
	}
}
