package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"seabattle-local/battlefield"
	"seabattle-local/engine"
	"seabattle-local/types"
)

// Greeting is printed once before the first turn.
func Greeting() string {
	lines := []string{
		"-------------------",
		"    Welcome to     ",
		"    sea battle     ",
		"-------------------",
		" input: row col    ",
		" row - row number  ",
		" col - column      ",
	}
	return strings.Join(lines, "\n") + "\n"
}

// OutcomeMessage is the line printed after a valid shot.
func OutcomeMessage(o battlefield.Outcome) string {
	switch o {
	case battlefield.Sunk:
		return "Ship destroyed!"
	case battlefield.Hit:
		return "Ship hit!"
	default:
		return "Miss"
	}
}

// RejectMessage is the line printed after a refused shot.
func RejectMessage(err error) string {
	switch {
	case errors.Is(err, battlefield.ErrOutOfRange):
		return capitalize(battlefield.ErrOutOfRange.Error()) + "!"
	case errors.Is(err, battlefield.ErrAlreadyTargeted):
		return capitalize(battlefield.ErrAlreadyTargeted.Error())
	default:
		return capitalize(err.Error())
	}
}

func turnMessage(s engine.TurnState) string {
	if s.Side() == types.SideComputer {
		return "Computer's move!"
	}
	return "Your move!"
}

func endMessage(s engine.TurnState) string {
	if s == engine.ComputerWon {
		return "The computer won!"
	}
	return "You won!"
}

// Play runs g to the end, printing boards, turns and results to w. With
// reveal set the computer's fleet is shown once the game is over.
func Play(ctx context.Context, g *engine.Game, w io.Writer, r *Renderer, reveal bool) (engine.TurnState, error) {
	sep := strings.Repeat("-", 20)
	boards := func() string {
		return r.Boards(g.View(types.SideUser), g.View(types.SideComputer))
	}

	g.OnShot(func(ev engine.ShotEvent) {
		fmt.Fprintln(w, OutcomeMessage(ev.Result.Outcome))
		if ev.Next.Terminal() {
			return
		}
		fmt.Fprint(w, boards())
		fmt.Fprintf(w, "%s\n%s\n", sep, turnMessage(ev.Next))
	})
	g.OnReject(func(_ types.Side, _ types.Coordinate, err error) {
		fmt.Fprintln(w, RejectMessage(err))
	})
	g.OnGameEnd(func(s engine.TurnState) {
		if reveal {
			g.Field(types.SideComputer).SetHidden(false)
		}
		fmt.Fprintf(w, "%s\n%s\n", sep, endMessage(s))
		fmt.Fprint(w, boards())
	})

	fmt.Fprint(w, boards())
	fmt.Fprintf(w, "%s\n%s\n", sep, turnMessage(g.State()))
	return g.Run(ctx)
}
