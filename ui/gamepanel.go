package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"seabattle-local/record"
	"seabattle-local/types"
)

// GameInfoPanel displays the score and shot history alongside the boards.
type GameInfoPanel struct {
	box       *tview.TextView
	session   string
	threshold int
	sunk      int // enemy vessels destroyed by the user
	lost      int // user vessels destroyed by the computer
	history   []record.Entry
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

func (p *GameInfoPanel) SetGame(session string, threshold int) {
	p.session = session
	p.threshold = threshold
	p.sunk, p.lost = 0, 0
	p.refresh()
}

func (p *GameInfoPanel) SetScore(sunk, lost int) {
	p.sunk, p.lost = sunk, lost
	p.refresh()
}

// SetHistory replaces the shot list, oldest first.
func (p *GameInfoPanel) SetHistory(entries []record.Entry) {
	p.history = entries
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	p.box.SetText(p.text())
}

func (p *GameInfoPanel) text() string {
	if p.threshold == 0 {
		return ""
	}
	var b strings.Builder

	b.WriteString("[white::b]Game Info[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]Game:[-:-:-] %s\n", p.session)
	fmt.Fprintf(&b, "[white]Sunk:[-:-:-] %d/%d\n", p.sunk, p.threshold)
	fmt.Fprintf(&b, "[white]Lost:[-:-:-] %d/%d\n", p.lost, p.threshold)

	if len(p.history) == 0 {
		return b.String()
	}
	b.WriteString("\n[white::b]Shots[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	for i, e := range p.history {
		who := "[white]You[-]"
		if e.Side == types.SideComputer {
			who = "[dimgray]CPU[-]"
		}
		marker := " "
		if i == len(p.history)-1 {
			marker = "[white]>[-]"
		}
		fmt.Fprintf(&b, "%s[dimgray]%3d.[-] %s %d %d %s\n", marker, e.Seq, who, e.Target.Row, e.Target.Col, outcomeTag(e.Outcome))
	}
	if first := p.history[0].Seq; first > 1 {
		fmt.Fprintf(&b, "[dimgray]  ··· %d earlier[-]\n", first-1)
	}
	return b.String()
}

func outcomeTag(outcome string) string {
	switch outcome {
	case "sunk":
		return "[red::b]sunk[-:-:-]"
	case "hit":
		return "[red]hit[-]"
	default:
		return "[dimgray]miss[-]"
	}
}

// CreateGameLayout creates the main game layout with boards and side panel.
func CreateGameLayout(board *SeaBoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout restores the normal game layout with boards, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *SeaBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	if board.infoPanel == nil {
		board.infoPanel = NewGameInfoPanel()
	}
	board.infoPanel.refresh()

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(board.infoPanel.Box(), 28, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered boards.
func BuildFocusLayout(gameFrame *tview.Flex, board *SeaBoardUI) {
	gameFrame.Clear()

	size := 10
	if board.user != nil {
		size = board.user.Size
	}
	width := size*4 + 12
	height := size + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, width, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, height, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
