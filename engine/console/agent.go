package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"seabattle-local/types"
)

// Agent is the interactive side in console mode.
type Agent struct {
	in     *bufio.Scanner
	out    io.Writer
	prompt string
}

// NewAgent reads targets from r and writes prompts and input errors to w.
func NewAgent(r io.Reader, w io.Writer) *Agent {
	return &Agent{in: bufio.NewScanner(r), out: w, prompt: "Your move: "}
}

// Name returns the display name.
func (a *Agent) Name() string { return "user" }

// NextTarget prompts until a well-formed line is entered. It returns io.EOF
// when the input ends. A blocked read is not interrupted by ctx; the context
// is checked between lines.
func (a *Agent) NextTarget(ctx context.Context, _ *types.BoardView) (types.Coordinate, error) {
	for {
		if err := ctx.Err(); err != nil {
			return types.Coordinate{}, err
		}
		fmt.Fprint(a.out, a.prompt)
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return types.Coordinate{}, err
			}
			return types.Coordinate{}, io.EOF
		}
		c, err := ParseTarget(a.in.Text())
		if err != nil {
			fmt.Fprintf(a.out, "%s!\n", capitalize(err.Error()))
			continue
		}
		return c, nil
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
