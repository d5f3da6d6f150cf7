package randombot

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle-local/types"
)

func TestNextTargetStaysOnBoard(t *testing.T) {
	b := New(6, rand.New(rand.NewSource(3)), 0)
	seen := make(map[types.Coordinate]bool)
	for i := 0; i < 2000; i++ {
		c, err := b.NextTarget(context.Background(), nil)
		require.NoError(t, err)
		require.True(t, c.Within(6), "%s off board", c)
		seen[c] = true
	}
	// every cell is reachable
	assert.Len(t, seen, 36)
}

func TestNextTargetUsesViewSize(t *testing.T) {
	b := New(6, rand.New(rand.NewSource(3)), 0)
	view := types.NewBoardView(3)
	for i := 0; i < 100; i++ {
		c, err := b.NextTarget(context.Background(), view)
		require.NoError(t, err)
		require.True(t, c.Within(3))
	}
}

func TestNextTargetAnnounces(t *testing.T) {
	b := New(6, rand.New(rand.NewSource(3)), 0)
	var announced []types.Coordinate
	b.Announce = func(c types.Coordinate) { announced = append(announced, c) }

	c, err := b.NextTarget(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []types.Coordinate{c}, announced)
}

func TestNextTargetHonorsCancel(t *testing.T) {
	b := New(6, rand.New(rand.NewSource(3)), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.NextTarget(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "computer", b.Name())
}

func TestDelayOncePerShot(t *testing.T) {
	b := New(6, rand.New(rand.NewSource(3)), time.Hour)
	view := types.NewBoardView(6)
	view.Cells[1][1] = types.CellMiss

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// a fresh board state means a new shot, so the bot pauses
	_, err := b.NextTarget(ctx, view)
	require.ErrorIs(t, err, context.Canceled)

	// same view again: the previous target was rejected, no second pause
	done := make(chan error, 1)
	go func() {
		_, err := b.NextTarget(context.Background(), view)
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("retry after a rejected target paused again")
	}

	// after a landed shot the pause applies again
	view.Cells[2][2] = types.CellHit
	_, err = b.NextTarget(ctx, view)
	assert.ErrorIs(t, err, context.Canceled)
}
