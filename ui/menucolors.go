package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup and history screens.
var MenuColors = struct {
	TitleAccent tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	ButtonBG    tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
}{
	TitleAccent: tcell.PaletteColor(38),  // sea blue
	Label:       tcell.PaletteColor(252), // light gray
	Hint:        tcell.PaletteColor(245), // dim gray
	ButtonBG:    tcell.PaletteColor(24),  // deep water
	ButtonFocus: tcell.PaletteColor(31),  // shallow water
	ButtonText:  tcell.PaletteColor(255), // white
}
