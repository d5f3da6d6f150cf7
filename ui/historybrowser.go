package ui

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"seabattle-local/record"
	"seabattle-local/types"
)

// HistoryBrowserUI lists saved battle transcripts in a table and previews
// the selected one.
type HistoryBrowserUI struct {
	flex    *tview.Flex
	table   *tview.Table
	preview *tview.Box
	dir     string
	games   []record.GameInfo
	replays map[string][2]*types.BoardView // by file path
	row     int
	onDone  func()

	// OnError, when set, is told about transcripts that could not be deleted.
	OnError func(title string, err error)
}

var historyColumns = []string{"Date", "Grid", "Shots", "Result"}

// NewHistoryBrowser creates a history browser over the transcripts in dir.
func NewHistoryBrowser(dir string, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		dir:     dir,
		onDone:  onDone,
		replays: make(map[string][2]*types.BoardView),
	}

	hb.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSelectedStyle(tcell.StyleDefault.Foreground(MenuColors.ButtonText).Background(MenuColors.ButtonFocus))
	hb.table.SetBorder(true).SetTitle(" Battle History ")
	hb.table.SetSelectionChangedFunc(func(row, column int) {
		hb.row = row
	})
	hb.table.SetInputCapture(hb.handleInput)

	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Replay ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	keys := tview.NewTextView().SetDynamicColors(true).
		SetText("  [dimgray]↑↓[-] select  [dimgray]d[-] delete  [dimgray]q[-] back")

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(hb.table, 44, 0, true).
			AddItem(hb.preview, 0, 1, false), 0, 1, true).
		AddItem(keys, 1, 0, false)

	hb.Refresh()
	return hb
}

func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the transcript list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.games, _ = record.ListGames(hb.dir)
	hb.replays = make(map[string][2]*types.BoardView)

	hb.table.Clear()
	for col, title := range historyColumns {
		hb.table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(MenuColors.TitleAccent).
			SetSelectable(false))
	}
	if len(hb.games) == 0 {
		hb.table.SetCell(1, 0, tview.NewTableCell("No games found").
			SetTextColor(MenuColors.Hint).
			SetSelectable(false))
		hb.row = 0
		return
	}
	for i, g := range hb.games {
		for col, text := range historyRow(g) {
			hb.table.SetCell(i+1, col, tview.NewTableCell(text).SetTextColor(MenuColors.Label))
		}
	}
	hb.table.Select(1, 0)
	hb.row = 1
}

func historyRow(g record.GameInfo) []string {
	result := g.Result
	if result == "" {
		result = "unfinished"
	}
	return []string{g.Date, fmt.Sprintf("%dx%d", g.Size, g.Size), strconv.Itoa(g.Shots), result}
}

// selected returns the game under the cursor.
func (hb *HistoryBrowserUI) selected() (record.GameInfo, bool) {
	i := hb.row - 1
	if i < 0 || i >= len(hb.games) {
		return record.GameInfo{}, false
	}
	return hb.games[i], true
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	back := event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q')
	switch {
	case back:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case event.Key() == tcell.KeyRune && event.Rune() == 'd':
		if g, ok := hb.selected(); ok {
			if err := os.Remove(g.FilePath); err != nil && hb.OnError != nil {
				hb.OnError("Cannot delete game", err)
			}
			hb.Refresh()
		}
		return nil
	}
	return event
}

func (hb *HistoryBrowserUI) replay(g record.GameInfo) ([2]*types.BoardView, bool) {
	if views, ok := hb.replays[g.FilePath]; ok {
		return views, true
	}
	t, err := record.ParseFile(g.FilePath)
	if err != nil {
		return [2]*types.BoardView{}, false
	}
	views := record.Replay(t)
	hb.replays[g.FilePath] = views
	return views, true
}

// drawPreview draws the replayed marks of both boards side by side.
func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	g, ok := hb.selected()
	if !ok {
		return x, y, width, height
	}
	views, ok := hb.replay(g)
	if !ok || width < g.Size*4+10 || height < g.Size+6 {
		return x, y, width, height
	}

	marks := map[types.CellState]struct {
		r     rune
		style tcell.Style
	}{
		types.CellEmpty: {'·', tcell.StyleDefault.Foreground(tcell.PaletteColor(240))},
		types.CellHit:   {'X', tcell.StyleDefault.Foreground(tcell.PaletteColor(196)).Bold(true)},
		types.CellMiss:  {'•', tcell.StyleDefault.Foreground(tcell.PaletteColor(250))},
	}
	dim := tcell.StyleDefault.Foreground(MenuColors.Hint)

	left := x + 2
	for _, side := range []types.Side{types.SideUser, types.SideComputer} {
		v := views[side]
		title := fmt.Sprintf("%s board, %d sunk", side, v.Destroyed)
		drawText(screen, left, y+1, title, dim)
		for r := 0; r < v.Size; r++ {
			for c := 0; c < v.Size; c++ {
				m := marks[v.Cells[r][c]]
				screen.SetContent(left+c*2, y+2+r, m.r, nil, m.style)
			}
		}
		left += v.Size*2 + 6
	}

	drawText(screen, x+2, y+g.Size+3, fmt.Sprintf("Game %s, %d shots", g.Session, g.Shots), dim)
	return x, y, width, height
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
