package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"seabattle-local/battlefield"
	"seabattle-local/logging"
	"seabattle-local/record"
	"seabattle-local/types"
)

// ErrGameOver is returned by Step once a side has won.
var ErrGameOver = errors.New("game is over")

// TurnState is the state of the turn machine.
type TurnState int

const (
	UserTurn TurnState = iota
	ComputerTurn
	UserWon
	ComputerWon
)

func (s TurnState) String() string {
	switch s {
	case ComputerTurn:
		return "computer turn"
	case UserWon:
		return "user won"
	case ComputerWon:
		return "computer won"
	default:
		return "user turn"
	}
}

// Terminal reports whether the game has ended.
func (s TurnState) Terminal() bool {
	return s == UserWon || s == ComputerWon
}

// Side returns the side to move, or the winner in a terminal state.
func (s TurnState) Side() types.Side {
	if s == ComputerTurn || s == ComputerWon {
		return types.SideComputer
	}
	return types.SideUser
}

func turnOf(side types.Side) TurnState {
	if side == types.SideComputer {
		return ComputerTurn
	}
	return UserTurn
}

func wonBy(side types.Side) TurnState {
	if side == types.SideComputer {
		return ComputerWon
	}
	return UserWon
}

// ShotEvent describes one valid shot.
type ShotEvent struct {
	Shooter types.Side
	Result  battlefield.ShotResult
	// View is the attacked board's render snapshot after the shot.
	View *types.BoardView
	// Next is the state after the shot.
	Next TurnState
}

// Game alternates shots between two agents until one side's fleet is gone.
// It is not safe for concurrent use: while Run executes, observe the game
// through the registered callbacks only.
type Game struct {
	cfg        GameConfig
	session    string
	fields     [2]*battlefield.Battlefield
	agents     [2]Agent
	state      TurnState
	transcript *record.Transcript
	logger     *log.Logger

	shotCallback   func(ShotEvent)
	rejectCallback func(side types.Side, target types.Coordinate, err error)
	endCallback    func(state TurnState)
}

// GameOption customizes a Game.
type GameOption func(*Game)

// WithLogger sets the logger for shots and rejections.
func WithLogger(l *log.Logger) GameOption {
	return func(g *Game) { g.logger = l }
}

// WithSession sets the session id used in logs and the transcript.
func WithSession(id string) GameOption {
	return func(g *Game) { g.session = id }
}

// NewGame creates a game over two already populated battlefields. The user moves first.
func NewGame(cfg GameConfig, userField, computerField *battlefield.Battlefield, user, computer Agent, opts ...GameOption) *Game {
	g := &Game{
		cfg:    cfg,
		fields: [2]*battlefield.Battlefield{userField, computerField},
		agents: [2]Agent{user, computer},
		state:  UserTurn,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("session", g.session)
	g.transcript = record.New(g.session, userField.Size())
	return g
}

// Session returns the session id.
func (g *Game) Session() string { return g.session }

// Config returns the configuration the game was created with.
func (g *Game) Config() GameConfig { return g.cfg }

// State returns the current turn state.
func (g *Game) State() TurnState { return g.state }

// Winner returns the winning side once the game is over.
func (g *Game) Winner() (types.Side, bool) {
	if !g.state.Terminal() {
		return 0, false
	}
	return g.state.Side(), true
}

// Field returns the battlefield owned by side.
func (g *Game) Field(side types.Side) *battlefield.Battlefield {
	return g.fields[side]
}

// View returns the render snapshot of the board owned by side.
func (g *Game) View(side types.Side) *types.BoardView {
	return g.fields[side].Snapshot()
}

// Transcript returns the record of valid shots.
func (g *Game) Transcript() *record.Transcript { return g.transcript }

// OnShot registers a callback for every valid shot.
func (g *Game) OnShot(callback func(ShotEvent)) {
	g.shotCallback = callback
}

// OnReject registers a callback for shots the battlefield refused.
func (g *Game) OnReject(callback func(side types.Side, target types.Coordinate, err error)) {
	g.rejectCallback = callback
}

// OnGameEnd registers a callback for when a side wins.
func (g *Game) OnGameEnd(callback func(state TurnState)) {
	g.endCallback = callback
}

// Step lets the side to move fire until it lands one valid shot. Rejected
// shots are reported through OnReject and cost nothing.
func (g *Game) Step(ctx context.Context) (ShotEvent, error) {
	if g.state.Terminal() {
		return ShotEvent{}, ErrGameOver
	}
	side := g.state.Side()
	agent := g.agents[side]
	target := g.fields[side.Opponent()]

	for {
		c, err := agent.NextTarget(ctx, target.View(true))
		if err != nil {
			return ShotEvent{}, fmt.Errorf("%s: %w", agent.Name(), err)
		}
		res, err := target.Shot(c)
		if err != nil {
			if !battlefield.IsShotRejection(err) {
				return ShotEvent{}, err
			}
			g.logger.Debug("shot rejected", "side", side, "target", c, "err", err)
			if g.rejectCallback != nil {
				g.rejectCallback(side, c, err)
			}
			continue
		}

		switch {
		case target.DestroyedCount() >= g.cfg.WinThreshold():
			g.state = wonBy(side)
		case res.ShouldContinue():
			g.state = turnOf(side)
		default:
			g.state = turnOf(side.Opponent())
		}
		g.transcript.Add(side, c, res.Outcome.String())
		g.logger.Info("shot", "side", side, "target", c, "outcome", res.Outcome, "next", g.state)

		ev := ShotEvent{Shooter: side, Result: res, View: target.Snapshot(), Next: g.state}
		if g.shotCallback != nil {
			g.shotCallback(ev)
		}
		if g.state.Terminal() {
			g.transcript.Result = g.state.String()
			g.logger.Info("game over", "state", g.state, "shots", g.transcript.Len())
			if g.endCallback != nil {
				g.endCallback(g.state)
			}
		}
		return ev, nil
	}
}

// Run plays until a side wins or an agent fails.
func (g *Game) Run(ctx context.Context) (TurnState, error) {
	for !g.state.Terminal() {
		if _, err := g.Step(ctx); err != nil {
			return g.state, err
		}
	}
	return g.state, nil
}
