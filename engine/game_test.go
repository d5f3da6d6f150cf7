package engine

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle-local/battlefield"
	"seabattle-local/engine/randombot"
	"seabattle-local/types"
)

// scriptAgent fires at a fixed list of targets and fails with io.EOF afterwards.
type scriptAgent struct {
	name    string
	targets []types.Coordinate
	views   []*types.BoardView
}

func (a *scriptAgent) Name() string { return a.name }

func (a *scriptAgent) NextTarget(ctx context.Context, view *types.BoardView) (types.Coordinate, error) {
	a.views = append(a.views, view)
	if len(a.targets) == 0 {
		return types.Coordinate{}, io.EOF
	}
	c := a.targets[0]
	a.targets = a.targets[1:]
	return c, nil
}

func script(name string, targets ...types.Coordinate) *scriptAgent {
	return &scriptAgent{name: name, targets: targets}
}

type placed struct {
	row, col, length int
	o                battlefield.Orientation
}

func field(t *testing.T, hidden bool, vessels ...placed) *battlefield.Battlefield {
	t.Helper()
	b := battlefield.New(battlefield.DefaultSize, hidden)
	for _, p := range vessels {
		v, err := battlefield.NewVessel(types.At(p.row, p.col), p.length, p.o)
		require.NoError(t, err)
		require.NoError(t, b.AddVessel(v))
	}
	b.ResetTurnState()
	return b
}

func smallConfig() GameConfig {
	cfg := DefaultConfig()
	cfg.Fleet = []int{2, 1}
	return cfg
}

func TestTurnPassesOnMissAndSinkButNotOnHit(t *testing.T) {
	userField := field(t, false, placed{5, 0, 1, battlefield.Horizontal}, placed{0, 4, 1, battlefield.Horizontal})
	computerField := field(t, true, placed{0, 0, 2, battlefield.Horizontal}, placed{4, 4, 1, battlefield.Horizontal})

	user := script("user", types.At(0, 0), types.At(0, 1), types.At(4, 4))
	computer := script("computer", types.At(3, 3))
	g := NewGame(smallConfig(), userField, computerField, user, computer)

	var states []TurnState
	g.OnShot(func(ev ShotEvent) { states = append(states, ev.Next) })
	var ended TurnState
	g.OnGameEnd(func(s TurnState) { ended = s })

	state, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UserWon, state)
	assert.Equal(t, UserWon, ended)
	// hit keeps the turn, sink passes it, miss passes it back, final sink wins
	assert.Equal(t, []TurnState{UserTurn, ComputerTurn, UserTurn, UserWon}, states)

	winner, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, types.SideUser, winner)
	assert.Equal(t, 2, g.Field(types.SideComputer).DestroyedCount())
	assert.Equal(t, 4, g.Transcript().Len())
	assert.Equal(t, "user won", g.Transcript().Result)
}

func TestRejectedShotsCostNoTurn(t *testing.T) {
	userField := field(t, false, placed{5, 5, 1, battlefield.Horizontal})
	computerField := field(t, true, placed{0, 0, 2, battlefield.Horizontal})

	user := script("user",
		types.At(6, 0), // off the board
		types.At(0, 0), // hit
		types.At(0, 0), // repeat
		types.At(2, 2), // miss
	)
	cfg := DefaultConfig()
	cfg.Fleet = []int{2}
	g := NewGame(cfg, userField, computerField, user, script("computer"))

	var rejected []error
	g.OnReject(func(side types.Side, target types.Coordinate, err error) {
		assert.Equal(t, types.SideUser, side)
		rejected = append(rejected, err)
	})

	ev, err := g.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, battlefield.Hit, ev.Result.Outcome)
	assert.Equal(t, UserTurn, g.State())

	ev, err = g.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, battlefield.Miss, ev.Result.Outcome)
	assert.Equal(t, ComputerTurn, g.State())

	require.Len(t, rejected, 2)
	assert.ErrorIs(t, rejected[0], battlefield.ErrOutOfRange)
	assert.ErrorIs(t, rejected[1], battlefield.ErrAlreadyTargeted)
	assert.Equal(t, 2, g.Transcript().Len())
}

func TestAgentErrorStopsRun(t *testing.T) {
	userField := field(t, false, placed{5, 5, 1, battlefield.Horizontal})
	computerField := field(t, true, placed{0, 0, 1, battlefield.Horizontal})
	cfg := DefaultConfig()
	cfg.Fleet = []int{1}
	g := NewGame(cfg, userField, computerField, script("user", types.At(3, 3)), script("computer"))

	state, err := g.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Contains(t, err.Error(), "computer")
	assert.Equal(t, ComputerTurn, state)
}

func TestStepAfterWin(t *testing.T) {
	userField := field(t, false, placed{5, 5, 1, battlefield.Horizontal})
	computerField := field(t, true, placed{0, 0, 1, battlefield.Horizontal})
	cfg := DefaultConfig()
	cfg.Fleet = []int{1}
	g := NewGame(cfg, userField, computerField, script("user", types.At(0, 0)), script("computer"))

	state, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UserWon, state)

	_, err = g.Step(context.Background())
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestComputerCanWin(t *testing.T) {
	userField := field(t, false, placed{1, 1, 1, battlefield.Horizontal})
	computerField := field(t, true, placed{0, 0, 1, battlefield.Horizontal})
	cfg := DefaultConfig()
	cfg.Fleet = []int{1}
	g := NewGame(cfg, userField, computerField, script("user", types.At(5, 5)), script("computer", types.At(1, 1)))

	state, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ComputerWon, state)
	winner, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, types.SideComputer, winner)
}

func TestAgentsNeverSeeOpponentFleet(t *testing.T) {
	userField := field(t, false, placed{1, 1, 2, battlefield.Vertical})
	computerField := field(t, true, placed{4, 4, 1, battlefield.Horizontal})
	computer := script("computer", types.At(5, 0))
	g := NewGame(smallConfig(), userField, computerField, script("user", types.At(0, 5)), computer)

	for i := 0; i < 2; i++ {
		_, err := g.Step(context.Background())
		require.NoError(t, err)
	}
	require.NotEmpty(t, computer.views)
	view := computer.views[0]
	assert.True(t, view.Hidden)
	assert.Equal(t, types.CellEmpty, view.Cell(types.At(1, 1)))
	// the user's own render snapshot still shows the fleet
	assert.Equal(t, types.CellOccupied, g.View(types.SideUser).Cell(types.At(1, 1)))
}

func TestWinThresholdMatchesFleet(t *testing.T) {
	assert.Equal(t, 7, DefaultConfig().WinThreshold())
}

func TestRandomGameRunsToTheEnd(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := DefaultConfig()
		cfg.ComputerDelay = 0
		rnd := NewRand(seed)
		user := randombot.New(cfg.GridSize, rnd, 0)
		computer := randombot.New(cfg.GridSize, rnd, 0)

		g, err := NewSession(context.Background(), cfg, user, computer, rnd, nil)
		require.NoError(t, err)
		assert.True(t, g.Field(types.SideComputer).Hidden())
		assert.False(t, g.Field(types.SideUser).Hidden())
		assert.NotEmpty(t, g.Session())

		state, err := g.Run(context.Background())
		require.NoError(t, err)
		require.True(t, state.Terminal())

		winner, _ := g.Winner()
		assert.Equal(t, 7, g.Field(winner.Opponent()).DestroyedCount())
		assert.Less(t, g.Field(winner).DestroyedCount(), 7)
	}
}
