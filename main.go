// seabattle-local is a terminal sea battle game against a computer opponent.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"seabattle-local/config"
	"seabattle-local/engine"
	"seabattle-local/engine/console"
	"seabattle-local/engine/randombot"
	"seabattle-local/logging"
	"seabattle-local/record"
	"seabattle-local/types"
	"seabattle-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// placementTimeout bounds fleet planning for configurations that barely fit.
const placementTimeout = 5 * time.Second

// Command-line flags
var (
	flagSize    = flag.Int("size", 0, "Grid size (4-10)")
	flagSeed    = flag.Int64("seed", 0, "Random seed (0: random)")
	flagPlain   = flag.Bool("plain", false, "Play in line mode on stdin/stdout")
	flagReveal  = flag.Bool("reveal", false, "Show the enemy fleet when the game ends")
	flagRecord  = flag.Bool("record", false, "Save a transcript of every finished game")
	flagPlay    = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus   = flag.Bool("focus", false, "Start in focus mode (boards only)")
	flagDebug   = flag.Bool("debug", false, "Log every shot to the debug log")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.SeaBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger *log.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("seabattle-local %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := log.InfoLevel
	if *flagDebug {
		level = log.DebugLevel
	}
	var closer io.Closer
	logger, closer, err = logging.OpenFile(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log disabled: %s\n", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}

	if *flagPlain {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := runPlain(ctx, cfg.GameConfig())
		stop()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(); err != nil {
		panic(err)
	}
}

// applyFlags overrides the loaded settings with command-line flags.
func applyFlags(c *config.Config) error {
	if *flagSize > 0 {
		c.Game.GridSize = *flagSize
	}
	if *flagSeed != 0 {
		c.Game.Seed = *flagSeed
	}
	return c.Validate()
}

// newGame plans both fleets and wires user against the random bot.
func newGame(ctx context.Context, gc engine.GameConfig, user engine.Agent, announce func(types.Coordinate)) (*engine.Game, error) {
	rnd := engine.NewRand(gc.Seed)
	bot := randombot.New(gc.GridSize, rnd, gc.ComputerDelay)
	bot.Announce = announce

	ctx, cancel := context.WithTimeout(ctx, placementTimeout)
	defer cancel()
	return engine.NewSession(ctx, gc, user, bot, rnd, logger)
}

func saveRecord(g *engine.Game) (string, error) {
	if !*flagRecord {
		return "", nil
	}
	path, err := record.SaveFile(g.Transcript(), "")
	if err != nil {
		logger.Error("save transcript", "err", err)
		return "", err
	}
	logger.Info("transcript saved", "path", path)
	return path, nil
}

func runPlain(ctx context.Context, gc engine.GameConfig) error {
	fmt.Print(console.Greeting())

	user := console.NewAgent(os.Stdin, os.Stdout)
	g, err := newGame(ctx, gc, user, func(c types.Coordinate) {
		fmt.Printf("Computer fires: %s\n", console.FormatTarget(c))
	})
	if err != nil {
		return err
	}

	r := console.NewRenderer(os.Stdout, cfg.Theme.ConsoleSymbols(), cfg.Theme.ConsoleColors(), cfg.Theme.ColorOutput)
	_, err = console.Play(ctx, g, os.Stdout, r, *flagReveal)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Println()
		return nil
	}
	if err != nil {
		return err
	}
	if path, err := saveRecord(g); err != nil {
		return err
	} else if path != "" {
		fmt.Printf("Transcript saved to %s\n", path)
	}
	return nil
}

func runTUI() error {
	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ≋ seabattle ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewSeaBoard(app, cfg, gameHint)
	gameBoard.RevealAtEnd = *flagReveal

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch gameBoard.HandleKey(event) {
		case ui.KeyIgnored:
			return event
		case ui.KeyLeave:
			rootPage.SwitchToPage("setup")
		case ui.KeyFocusToggle:
			if gameBoard.IsFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		}
		return nil
	})

	history := ui.NewHistoryBrowser(record.DefaultDir(), func() {
		rootPage.SwitchToPage("setup")
	})
	history.OnError = showError

	setupUI := ui.NewGameSetup(cfg,
		func(gc engine.GameConfig, err error) {
			if err != nil {
				showError("Cannot start game", err)
				return
			}
			startGame(gc)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
		func() {
			history.Refresh()
			rootPage.SwitchToPage("history")
		},
	)
	setupUI.OnError = showError

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	quickStart := *flagPlay || *flagFocus
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 64), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("history", history.Flex(), true, false)

	if quickStart {
		startGame(cfg.GameConfig())
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	defer gameBoard.Close()
	return app.SetRoot(rootPage, true).Run()
}

// startGame starts a game with the given configuration.
func startGame(gc engine.GameConfig) {
	gameBoard.Close()

	agent := ui.NewTargetAgent()
	g, err := newGame(context.Background(), gc, agent, nil)
	if err != nil {
		showError("Failed to start game", err)
		return
	}
	gameBoard.ConnectGame(g, agent)
	gameBoard.Start(context.Background(), func(state engine.TurnState, err error) {
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				showError("Game stopped", err)
			}
			return
		}
		showGameOver(g, state)
	})
	rootPage.SwitchToPage("gameview")
}

func showGameOver(g *engine.Game, state engine.TurnState) {
	text := "You won!"
	if state == engine.ComputerWon {
		text = "The computer won!"
	}
	text += fmt.Sprintf("\n%d shots fired", g.Transcript().Len())
	if path, err := saveRecord(g); err != nil {
		text += "\ntranscript not saved"
	} else if path != "" {
		text += "\ntranscript saved"
	}

	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"New Game", "Look at Boards"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("gameover")
			if buttonIndex == 0 {
				rootPage.SwitchToPage("setup")
			}
		})
	rootPage.AddPage("gameover", modal, true, true)
}

func showError(title string, err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("%s:\n%s", title, err.Error())).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}
