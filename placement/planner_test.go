package placement

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle-local/battlefield"
)

// scriptedRand replays fixed values, then keeps returning the last one.
type scriptedRand struct {
	values []int
	pos    int
	calls  int
}

func (s *scriptedRand) Intn(n int) int {
	s.calls++
	v := s.values[len(s.values)-1]
	if s.pos < len(s.values) {
		v = s.values[s.pos]
		s.pos++
	}
	return v % n
}

func TestAttemptPlacesDefaultFleet(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	p := NewPlanner(battlefield.DefaultSize, DefaultFleet, rnd)

	var board *battlefield.Battlefield
	for board == nil {
		b, err := p.Attempt()
		if err != nil {
			require.ErrorIs(t, err, ErrPlacementExhausted)
			continue
		}
		board = b
	}

	vessels := board.Vessels()
	require.Len(t, vessels, len(DefaultFleet))
	for i, v := range vessels {
		assert.Equal(t, DefaultFleet[i], v.Len())
		assert.Equal(t, v.Len(), v.Remaining())
	}
	assert.Equal(t, 0, board.DestroyedCount())
	assert.False(t, board.Hidden())
}

func TestAttemptExhaustsBudget(t *testing.T) {
	// every sample lands the bow on row/col 6, which is always off a 6x6 grid
	rnd := &scriptedRand{values: []int{6}}
	p := NewPlanner(battlefield.DefaultSize, DefaultFleet, rnd, WithMaxAttempts(25))

	board, err := p.Attempt()
	assert.Nil(t, board)
	assert.ErrorIs(t, err, ErrPlacementExhausted)
	assert.Equal(t, 25*3, rnd.calls)
}

func TestAttemptRetriesRejectedPositions(t *testing.T) {
	// bow (6,6) rejected, then bow (0,0) horizontal accepted
	rnd := &scriptedRand{values: []int{6, 6, 0, 0, 0, 0}}
	p := NewPlanner(battlefield.DefaultSize, []int{3}, rnd)

	board, err := p.Attempt()
	require.NoError(t, err)
	require.Len(t, board.Vessels(), 1)
	v := board.Vessels()[0]
	assert.Equal(t, battlefield.Horizontal, v.Orientation())
	assert.Equal(t, 0, v.Bow().Row)
	assert.Equal(t, 0, v.Bow().Col)
}

func TestGenerateAlwaysProducesBoard(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	p := NewPlanner(battlefield.DefaultSize, DefaultFleet, rnd)
	for i := 0; i < 50; i++ {
		board, err := p.Generate(context.Background())
		require.NoError(t, err)
		assert.Len(t, board.Vessels(), len(DefaultFleet))
	}
}

func TestGenerateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPlanner(battlefield.DefaultSize, DefaultFleet, &scriptedRand{values: []int{6}}, WithMaxAttempts(1))

	_, err := p.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
