package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"seabattle-local/logging"
	"seabattle-local/placement"
)

// NewRand returns the random source for a game. A zero seed is replaced by the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSessionID returns a short id for logs and transcripts.
func NewSessionID() string {
	return uuid.NewString()[:8]
}

// NewSession plans both fleets and returns a game ready to run. The
// computer's board is hidden unless cfg.RevealEnemy is set.
func NewSession(ctx context.Context, cfg GameConfig, user, computer Agent, rnd placement.Rand, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	session := NewSessionID()
	planner := placement.NewPlanner(cfg.GridSize, cfg.Fleet, rnd,
		placement.WithMaxAttempts(cfg.MaxAttempts),
		placement.WithLogger(logger.With("session", session)),
	)

	userField, err := planner.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan user fleet: %w", err)
	}
	computerField, err := planner.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan computer fleet: %w", err)
	}
	computerField.SetHidden(!cfg.RevealEnemy)

	logger.Info("session started", "session", session, "size", cfg.GridSize, "fleet", len(cfg.Fleet))
	return NewGame(cfg, userField, computerField, user, computer,
		WithSession(session), WithLogger(logger)), nil
}
