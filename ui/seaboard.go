// Package ui specifies custom controls for tview to play sea battle in the terminal.
package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"seabattle-local/config"
	"seabattle-local/engine"
	"seabattle-local/engine/console"
	"seabattle-local/types"
)

const historyLen = 12

// SeaBoardUI draws the user's fleet next to the enemy waters and lets the
// user aim at the enemy board with a cursor.
type SeaBoardUI struct {
	Box      *tview.Box
	user     *types.BoardView
	enemy    *types.BoardView
	hint     *tview.TextView
	cfg      *config.Config
	finished bool
	state    engine.TurnState
	message  string
	selRow   int
	selCol   int
	lastShot [2]*types.Coordinate
	app      *tview.Application
	game     *engine.Game
	agent    *TargetAgent
	cancel   context.CancelFunc
	styles   []tcell.Color

	infoPanel *GameInfoPanel
	focusMode bool

	// RevealAtEnd uncovers the enemy fleet once the game is over.
	RevealAtEnd bool
	onEnd       func(state engine.TurnState, err error)
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *SeaBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *SeaBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

func (g *SeaBoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *SeaBoardUI) SelectedTile() *types.Coordinate {
	if g.selRow == -1 && g.selCol == -1 {
		return nil
	}
	c := types.At(g.selRow, g.selCol)
	return &c
}

// MoveSelection moves the cursor on the enemy board. The first move places
// it on the user's last shot, or the board center.
func (g *SeaBoardUI) MoveSelection(dRow, dCol int) {
	if g.finished || g.enemy == nil {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		if last := g.lastShot[types.SideComputer]; last != nil {
			g.selRow, g.selCol = last.Row, last.Col
		} else {
			g.selRow, g.selCol = g.enemy.Size/2, g.enemy.Size/2
		}
		return
	}
	next := types.At(g.selRow+dRow, g.selCol+dCol)
	if !next.Within(g.enemy.Size) {
		return
	}
	g.selRow, g.selCol = next.Row, next.Col
}

func (g *SeaBoardUI) ResetSelection() {
	g.selRow = -1
	g.selCol = -1
}

func NewSeaBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *SeaBoardUI {
	board := &SeaBoardUI{
		Box:    tview.NewBox(),
		hint:   hint,
		app:    app,
		selRow: -1,
		selCol: -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if board.user == nil || board.enemy == nil {
			return x, y, 1, 1
		}
		left := x + 3
		right := left + board.user.Size*2 + 6
		tview.Print(screen, "Your fleet", left, y, board.user.Size*2+4, tview.AlignLeft, tcell.ColorWhite)
		tview.Print(screen, "Enemy waters", right, y, board.enemy.Size*2+4, tview.AlignLeft, tcell.ColorWhite)
		board.drawField(screen, board.user, types.SideUser, left, y+1)
		board.drawField(screen, board.enemy, types.SideComputer, right, y+1)
		return x, y, right - x + board.enemy.Size*2, board.user.Size + 2
	})
	return board
}

// ConnectGame shows g on the board and routes key presses to agent, which
// must be g's user agent.
func (g *SeaBoardUI) ConnectGame(game *engine.Game, agent *TargetAgent) {
	g.finished = false
	g.game = game
	g.agent = agent
	g.state = game.State()
	g.message = ""
	g.lastShot = [2]*types.Coordinate{}
	g.user = game.View(types.SideUser)
	g.enemy = game.View(types.SideComputer)
	g.ResetSelection()

	// callbacks run on the engine goroutine; only snapshots cross over
	game.OnShot(func(ev engine.ShotEvent) {
		user, enemy := game.View(types.SideUser), game.View(types.SideComputer)
		history := game.Transcript().Last(historyLen)
		target := ev.Result.Target
		msg := shotMessage(ev)
		g.queue(func() {
			if g.game != game {
				return
			}
			g.user, g.enemy = user, enemy
			g.lastShot[ev.Shooter.Opponent()] = &target
			g.state = ev.Next
			g.message = msg
			if g.infoPanel != nil {
				g.infoPanel.SetHistory(history)
			}
			g.refreshHint()
		})
	})
	game.OnReject(func(side types.Side, _ types.Coordinate, err error) {
		if side != types.SideUser {
			return
		}
		msg := console.RejectMessage(err)
		g.queue(func() {
			if g.game != game {
				return
			}
			g.message = msg
			g.refreshHint()
		})
	})
	game.OnGameEnd(func(state engine.TurnState) {
		if g.RevealAtEnd {
			game.Field(types.SideComputer).SetHidden(false)
		}
		enemy := game.View(types.SideComputer)
		g.queue(func() {
			if g.game != game {
				return
			}
			g.finished = true
			g.state = state
			g.enemy = enemy
			g.ResetSelection()
			g.refreshHint()
		})
	})

	if g.infoPanel != nil {
		g.infoPanel.SetGame(game.Session(), game.Config().WinThreshold())
		g.infoPanel.SetHistory(nil)
	}
	g.refreshHint()
}

// Start runs the connected game on its own goroutine. onEnd is called on
// the UI goroutine when Run returns.
func (g *SeaBoardUI) Start(ctx context.Context, onEnd func(state engine.TurnState, err error)) {
	if g.game == nil {
		return
	}
	ctx, g.cancel = context.WithCancel(ctx)
	g.onEnd = onEnd
	game := g.game
	go func() {
		state, err := game.Run(ctx)
		g.queue(func() {
			// a newer game may have been connected meanwhile
			if g.game == game && g.onEnd != nil {
				g.onEnd(state, err)
			}
		})
	}()
}

// Fire submits the selected cell. It reports false when there is no
// selection or the engine is not waiting for the user.
func (g *SeaBoardUI) Fire() bool {
	sel := g.SelectedTile()
	if g.finished || sel == nil || g.agent == nil {
		return false
	}
	if !g.agent.Submit(*sel) {
		return false
	}
	g.message = ""
	return true
}

// Close stops a running game.
func (g *SeaBoardUI) Close() {
	g.onEnd = nil
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *SeaBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.WaterColor),      // 0
		tcell.PaletteColor(c.Theme.Colors.WaterColorAlt),   // 1
		tcell.PaletteColor(c.Theme.Colors.ShipColor),       // 2
		tcell.PaletteColor(c.Theme.Colors.HitColor),        // 3
		tcell.PaletteColor(c.Theme.Colors.MissColor),       // 4
		tcell.PaletteColor(c.Theme.Colors.LineColor),       // 5
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),   // 6
		tcell.PaletteColor(c.Theme.Colors.LastShotColorBG), // 7
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),   // 8
	}
	g.cfg = c
}

func (g *SeaBoardUI) IsFinished() bool {
	return g.finished
}

func (g *SeaBoardUI) queue(f func()) {
	if g.app == nil {
		f()
		return
	}
	g.app.QueueUpdateDraw(f)
}

func (g *SeaBoardUI) refreshHint() {
	if g.infoPanel != nil && g.user != nil && g.enemy != nil {
		g.infoPanel.SetScore(g.enemy.Destroyed, g.user.Destroyed)
	}
	if g.hint == nil {
		return
	}
	g.hint.SetText(hintText(g.state, g.finished, g.focusMode, g.message))
}

func hintText(state engine.TurnState, finished, focus bool, message string) string {
	if focus {
		return "  f to toggle"
	}
	if finished {
		result := "You won!"
		if state == engine.ComputerWon {
			result = "The computer won!"
		}
		return fmt.Sprintf("  %s   q · return to menu", result)
	}
	turn := "  ◌ Computer is aiming..."
	if state == engine.UserTurn {
		turn = "  ● Your move"
	}
	if message != "" {
		turn += " · " + message
	}
	return turn + "\n  hjkl/↑↓←→ aim   ⏎ fire   f focus   q quit"
}

func shotMessage(ev engine.ShotEvent) string {
	who := "You"
	if ev.Shooter == types.SideComputer {
		who = "Computer"
	}
	return fmt.Sprintf("%s fired at %d %d: %s", who, ev.Result.Target.Row, ev.Result.Target.Col, console.OutcomeMessage(ev.Result.Outcome))
}

// cellStyle returns the rune and style for one cell of the board owned by side.
func (g *SeaBoardUI) cellStyle(view *types.BoardView, side types.Side, c types.Coordinate) (rune, tcell.Style) {
	sym := g.cfg.Theme.Symbols
	bg := g.styles[0]
	if (c.Row+c.Col)%2 == 1 {
		bg = g.styles[1]
	}
	r, fg := sym.Water, g.styles[5]
	switch view.Cell(c) {
	case types.CellOccupied:
		r, fg = sym.Ship, g.styles[2]
	case types.CellHit:
		r, fg = sym.Hit, g.styles[3]
	case types.CellMiss:
		r, fg = sym.Miss, g.styles[4]
	}

	if last := g.lastShot[side]; last != nil && *last == c && g.cfg.Theme.DrawLastShotBackground {
		bg = g.styles[7]
	}
	if side == types.SideComputer && c.Row == g.selRow && c.Col == g.selCol {
		if g.cfg.Theme.DrawCursorBackground {
			bg, fg = g.styles[8], g.styles[6]
		} else if view.Cell(c) == types.CellEmpty {
			r = sym.Cursor
		}
	}
	return r, tcell.StyleDefault.Background(bg).Foreground(fg)
}

func (g *SeaBoardUI) drawField(screen tcell.Screen, view *types.BoardView, side types.Side, left, top int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[8])
	cursorHere := side == types.SideComputer

	for col := 0; col < view.Size; col++ {
		s := style
		if cursorHere && col == g.selCol {
			s = highlight
		}
		screen.SetContent(left+col*2, top, rune('0'+col), nil, s)
		screen.SetContent(left+col*2+1, top, ' ', nil, s)
	}
	for row := 0; row < view.Size; row++ {
		s := style
		if cursorHere && row == g.selRow {
			s = highlight
		}
		screen.SetContent(left-2, top+1+row, rune('0'+row), nil, s)
		for col := 0; col < view.Size; col++ {
			r, cs := g.cellStyle(view, side, types.At(row, col))
			drawCell(screen, cs, r, col, row, left, top+1)
		}
	}
}

// drawCell draws a cell 2 characters wide
func drawCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

// KeyAction tells the caller what a key press on the board requires of it.
type KeyAction int

const (
	KeyIgnored KeyAction = iota
	KeyHandled
	KeyLeave       // the game was closed, go back to the menu
	KeyFocusToggle // focus mode changed, rebuild the layout
)

var moveKeys = map[tcell.Key][2]int{
	tcell.KeyUp:    {-1, 0},
	tcell.KeyDown:  {1, 0},
	tcell.KeyLeft:  {0, -1},
	tcell.KeyRight: {0, 1},
}

var moveRunes = map[rune][2]int{
	'k': {-1, 0},
	'j': {1, 0},
	'h': {0, -1},
	'l': {0, 1},
}

// HandleKey applies a key press: hjkl or arrows aim, enter or space fire,
// f toggles focus mode, q clears the cursor or leaves the game.
func (g *SeaBoardUI) HandleKey(event *tcell.EventKey) KeyAction {
	if d, ok := moveKeys[event.Key()]; ok {
		g.MoveSelection(d[0], d[1])
		return KeyHandled
	}
	if event.Key() == tcell.KeyEnter {
		g.Fire()
		return KeyHandled
	}
	if event.Key() != tcell.KeyRune {
		return KeyIgnored
	}
	if d, ok := moveRunes[event.Rune()]; ok {
		g.MoveSelection(d[0], d[1])
		return KeyHandled
	}
	switch event.Rune() {
	case ' ':
		g.Fire()
		return KeyHandled
	case 'f':
		g.ToggleFocusMode()
		return KeyFocusToggle
	case 'q':
		if g.SelectedTile() != nil {
			g.ResetSelection()
			return KeyHandled
		}
		g.Close()
		return KeyLeave
	}
	return KeyIgnored
}
