package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"seabattle-local/config"
	"seabattle-local/engine"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form      *tview.Form
	flex      *tview.Flex
	cfg       *config.Config
	onStart   func(engine.GameConfig, error)
	onCancel  func()
	onColors  func()
	onHistory func()
	save      func() error

	// OnError, when set, receives failures of the form's actions.
	OnError func(title string, err error)

	gridSize int
	reveal   bool
	seed     int64
}

// gridSizes lists the selectable board sizes.
func gridSizes() []string {
	var sizes []string
	for n := config.MinGridSize; n <= config.MaxGridSize; n++ {
		sizes = append(sizes, strconv.Itoa(n)+"x"+strconv.Itoa(n))
	}
	return sizes
}

// NewGameSetup creates a new game setup form with defaults from cfg. onStart
// receives the validation error when the chosen settings are unusable.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig, error), onCancel func(), onColors func(), onHistory func()) *GameSetupUI {
	setup := &GameSetupUI{
		cfg:       cfg,
		onStart:   onStart,
		onCancel:  onCancel,
		onColors:  onColors,
		onHistory: onHistory,
		save:      cfg.Save,
		gridSize:  cfg.Game.GridSize,
		reveal:    cfg.Game.RevealEnemy,
		seed:      cfg.Game.Seed,
	}

	form := tview.NewForm()

	form.AddDropDown("Grid Size", gridSizes(), cfg.Game.GridSize-config.MinGridSize, func(option string, index int) {
		setup.gridSize = config.MinGridSize + index
	})

	form.AddCheckbox("Show Enemy Fleet", setup.reveal, func(checked bool) {
		setup.reveal = checked
	})

	seedText := ""
	if setup.seed != 0 {
		seedText = strconv.FormatInt(setup.seed, 10)
	}
	form.AddInputField("Seed (blank: random)", seedText, 12, func(text string, lastChar rune) bool {
		return lastChar >= '0' && lastChar <= '9'
	}, func(text string) {
		setup.seed, _ = strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	})

	form.AddButton("Start Game", func() {
		onStart(setup.GameConfig())
	})

	form.AddButton("Save Defaults", func() {
		if err := setup.SaveDefaults(); err != nil && setup.OnError != nil {
			setup.OnError("Cannot save defaults", err)
		}
	})

	form.AddButton("Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("History", func() {
		if onHistory != nil {
			onHistory()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetLabelColor(MenuColors.Label)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfig returns the engine configuration for the current form values.
func (s *GameSetupUI) GameConfig() (engine.GameConfig, error) {
	c := *s.cfg
	c.Game.GridSize = s.gridSize
	c.Game.RevealEnemy = s.reveal
	c.Game.Seed = s.seed
	if err := c.Validate(); err != nil {
		return engine.GameConfig{}, err
	}
	return c.GameConfig(), nil
}

// SaveDefaults stores the form values as the defaults for new games.
func (s *GameSetupUI) SaveDefaults() error {
	if _, err := s.GameConfig(); err != nil {
		return err
	}
	s.cfg.Game.GridSize = s.gridSize
	s.cfg.Game.RevealEnemy = s.reveal
	s.cfg.Game.Seed = s.seed
	return s.save()
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
