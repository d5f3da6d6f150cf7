package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"seabattle-local/config"
	"seabattle-local/types"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	selectedWaterColor int
	selectedShipColor  int
	editingShip        bool // true = editing ship color, false = editing water color
}

type paletteEntry struct {
	code int
	name string
}

// Water colors, dark blues and teals
var waterColors = []paletteEntry{
	{17, "Navy Blue"},
	{18, "Dark Blue"},
	{19, "Blue"},
	{23, "Deep Teal"},
	{24, "Dark Cyan"},
	{25, "Ocean"},
	{30, "Teal"},
	{31, "Sea Blue"},
	{32, "Bright Ocean"},
	{37, "Lagoon"},
	{60, "Slate"},
	{235, "Night"},
	{238, "Dark Gray"},
	{16, "True Black"},
}

// Ship colors that contrast with the water
var shipColors = []paletteEntry{
	{250, "Gray"},
	{252, "Light Gray"},
	{255, "White"},
	{244, "Steel"},
	{229, "Pale Yellow"},
	{220, "Bright Yellow"},
	{214, "Orange Gold"},
	{180, "Tan"},
	{136, "Dark Brown"},
	{46, "Green"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		selectedWaterColor: cfg.Theme.Colors.WaterColor,
		selectedShipColor:  cfg.Theme.Colors.ShipColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.preselect(index)
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.preselect(index)
		if cc.apply() {
			onDone()
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) palette() []paletteEntry {
	if cc.editingShip {
		return shipColors
	}
	return waterColors
}

// preselect previews the color at index of the current palette.
func (cc *ColorConfigUI) preselect(index int) {
	p := cc.palette()
	if index < 0 || index >= len(p) {
		return
	}
	if cc.editingShip {
		cc.selectedShipColor = p[index].code
	} else {
		cc.selectedWaterColor = p[index].code
	}
}

// apply stores the previewed color. Choosing a ship color switches back to
// the water list; choosing a water color finishes and reports true.
func (cc *ColorConfigUI) apply() bool {
	if cc.editingShip {
		cc.cfg.Theme.Colors.ShipColor = cc.selectedShipColor
		cc.cfg.Save()
		cc.editingShip = false
		cc.populateColorList()
		return false
	}
	cc.cfg.Theme.Colors.WaterColor = cc.selectedWaterColor
	cc.cfg.Theme.Colors.WaterColorAlt = cc.selectedWaterColor
	cc.cfg.Save()
	return true
}

func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedWaterColor
	cc.colorList.SetTitle(" Select Water Color (Tab: switch to ship) ")
	if cc.editingShip {
		current = cc.selectedShipColor
		cc.colorList.SetTitle(" Select Ship Color (Tab: switch to water) ")
	}
	for i, c := range cc.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.palette() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const size = 6
	if width < 20 || height < 10 {
		return x, y, width, height
	}
	water := tcell.PaletteColor(cc.selectedWaterColor)
	waterStyle := tcell.StyleDefault.Background(water).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.LineColor))
	shipStyle := tcell.StyleDefault.Background(water).Foreground(tcell.PaletteColor(cc.selectedShipColor))
	hitStyle := tcell.StyleDefault.Background(water).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.HitColor))
	missStyle := tcell.StyleDefault.Background(water).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.MissColor))

	cells := map[types.Coordinate]types.CellState{
		types.At(1, 1): types.CellOccupied,
		types.At(1, 2): types.CellHit,
		types.At(1, 3): types.CellOccupied,
		types.At(3, 4): types.CellOccupied,
		types.At(4, 4): types.CellOccupied,
		types.At(4, 1): types.CellMiss,
		types.At(0, 5): types.CellMiss,
	}
	sym := cc.cfg.Theme.Symbols

	startX := x + 2
	startY := y + 1
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			r, style := sym.Water, waterStyle
			switch cells[types.At(row, col)] {
			case types.CellOccupied:
				r, style = sym.Ship, shipStyle
			case types.CellHit:
				r, style = sym.Hit, hitStyle
			case types.CellMiss:
				r, style = sym.Miss, missStyle
			}
			drawCell(screen, style, r, col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("Water: %d  Ship: %d", cc.selectedWaterColor, cc.selectedShipColor)
	tview.Print(screen, info, startX, startY+size+1, width-3, tview.AlignLeft, tcell.ColorWhite)

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between water color and ship color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingShip = !cc.editingShip
	cc.populateColorList()
}
