package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seabattle-local/types"
)

// Symbols are the runes drawn for each cell state.
type Symbols struct {
	Empty rune
	Ship  rune
	Hit   rune
	Miss  rune
}

// Colors are 256-color palette indexes for each cell state.
type Colors struct {
	Empty int
	Ship  int
	Hit   int
	Miss  int
}

// DefaultSymbols match the classic look.
var DefaultSymbols = Symbols{Empty: ' ', Ship: '■', Hit: 'X', Miss: '•'}

// DefaultColors are magenta water, blue ships, red hits and gray misses.
var DefaultColors = Colors{Empty: 13, Ship: 4, Hit: 9, Miss: 7}

// Renderer draws board views as text tables.
type Renderer struct {
	runes  [4]rune
	styles [4]lipgloss.Style
	color  bool
}

// NewRenderer creates a renderer for output going to w. Colors are applied
// only when color is set, and then only as far as w's terminal supports them.
func NewRenderer(w io.Writer, symbols Symbols, colors Colors, color bool) *Renderer {
	r := &Renderer{
		runes: [4]rune{symbols.Empty, symbols.Ship, symbols.Hit, symbols.Miss},
		color: color,
	}
	if color {
		lr := lipgloss.NewRenderer(w)
		for i, c := range []int{colors.Empty, colors.Ship, colors.Hit, colors.Miss} {
			r.styles[i] = lr.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(c))).Bold(i == int(types.CellHit))
		}
	}
	return r
}

func (r *Renderer) cell(s types.CellState) string {
	ch := string(r.runes[s])
	if !r.color {
		return ch
	}
	return r.styles[s].Render(ch)
}

// Render draws one board:
//
//	  | 0 | 1 | 2 |
//	0 | ■ |   | • |
func (r *Renderer) Render(view *types.BoardView) string {
	var b strings.Builder
	b.WriteString(" ")
	for c := 0; c < view.Size; c++ {
		fmt.Fprintf(&b, " | %d", c)
	}
	b.WriteString(" |\n")
	for row := 0; row < view.Size; row++ {
		fmt.Fprintf(&b, "%d", row)
		for col := 0; col < view.Size; col++ {
			fmt.Fprintf(&b, " | %s", r.cell(view.Cells[row][col]))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

// Boards draws both sides the way they are shown between turns.
func (r *Renderer) Boards(user, computer *types.BoardView) string {
	sep := strings.Repeat("-", 20)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nYour board:\n%s", sep, r.Render(user))
	fmt.Fprintf(&b, "%s\nComputer board:\n%s", sep, r.Render(computer))
	return b.String()
}
