package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"seabattle-local/battlefield"
	"seabattle-local/engine"
	"seabattle-local/engine/console"
)

var (
	cfgFile = "seabattle-local/config.json"
)

// Environment variables that override the config file.
const (
	EnvGridSize      = "SEABATTLE_GRID_SIZE"
	EnvMaxAttempts   = "SEABATTLE_MAX_ATTEMPTS"
	EnvComputerDelay = "SEABATTLE_COMPUTER_DELAY_MS"
	EnvSeed          = "SEABATTLE_SEED"
)

const (
	MinGridSize = 4
	MaxGridSize = battlefield.MaxSize
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	WaterColor      int `json:"water"`
	WaterColorAlt   int `json:"water_alt"`
	ShipColor       int `json:"ship"`
	HitColor        int `json:"hit"`
	MissColor       int `json:"miss"`
	LineColor       int `json:"line"`
	CursorColorFG   int `json:"cursor_fg"`
	CursorColorBG   int `json:"cursor_bg"`
	LastShotColorBG int `json:"last_shot_bg"`
}

type ConfigSymbols struct {
	Water  rune `json:"water"`
	Ship   rune `json:"ship"`
	Hit    rune `json:"hit"`
	Miss   rune `json:"miss"`
	Cursor rune `json:"cursor"`
}

type Theme struct {
	DrawCursorBackground   bool          `json:"draw_cursor_bg"`
	DrawLastShotBackground bool          `json:"draw_last_shot_bg"`
	ColorOutput            bool          `json:"console_colors"`
	Colors                 ConfigColors  `json:"colors"`
	Symbols                ConfigSymbols `json:"symbols"`
}

// GameSettings holds the defaults for new games.
type GameSettings struct {
	GridSize        int   `json:"grid_size"`
	Fleet           []int `json:"fleet"`
	MaxAttempts     int   `json:"max_attempts"`
	ComputerDelayMs int   `json:"computer_delay_ms"`
	RevealEnemy     bool  `json:"reveal_enemy"`
	Seed            int64 `json:"seed"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameSettings `json:"game"`
}

// InitConfig loads defaults, then the XDG config file if present, then
// environment overrides (a .env file in the working directory counts).
func InitConfig() (*Config, error) {
	config := DefaultConfig
	config.Game.Fleet = append([]int(nil), DefaultConfig.Game.Fleet...)
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// loadDotEnv sets variables from path without overriding the real environment.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides game settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvGridSize, &c.Game.GridSize},
		{EnvMaxAttempts, &c.Game.MaxAttempts},
		{EnvComputerDelay, &c.Game.ComputerDelayMs},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s must be a number, got %q", e.key, v)}
		}
		*e.dst = n
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s must be a number, got %q", EnvSeed, v)}
		}
		c.Game.Seed = n
	}
	return nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Water, c.Theme.Symbols.Ship, c.Theme.Symbols.Hit, c.Theme.Symbols.Miss} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	g := c.Game
	if g.GridSize < MinGridSize || g.GridSize > MaxGridSize {
		return &InvalidConfig{fmt.Sprintf("grid size must be between %d and %d", MinGridSize, MaxGridSize)}
	}
	if len(g.Fleet) == 0 {
		return &InvalidConfig{"fleet must not be empty"}
	}
	// each vessel plus its right and lower halo is a disjoint (len+1) x 2 block
	// on a (size+1) x (size+1) grid
	need := 0
	for _, l := range g.Fleet {
		if l < 1 || l > battlefield.MaxVesselLength {
			return &InvalidConfig{fmt.Sprintf("vessel length must be between 1 and %d", battlefield.MaxVesselLength)}
		}
		need += (l + 1) * 2
	}
	if need > (g.GridSize+1)*(g.GridSize+1) {
		return &InvalidConfig{fmt.Sprintf("fleet does not fit on a %dx%d grid", g.GridSize, g.GridSize)}
	}
	if g.MaxAttempts < 1 {
		return &InvalidConfig{"max attempts must be positive"}
	}
	if g.ComputerDelayMs < 0 {
		return &InvalidConfig{"computer delay must not be negative"}
	}
	return nil
}

// GameConfig converts the settings into an engine configuration.
func (c *Config) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		GridSize:      c.Game.GridSize,
		Fleet:         append([]int(nil), c.Game.Fleet...),
		MaxAttempts:   c.Game.MaxAttempts,
		ComputerDelay: time.Duration(c.Game.ComputerDelayMs) * time.Millisecond,
		RevealEnemy:   c.Game.RevealEnemy,
		Seed:          c.Game.Seed,
	}
}

// ConsoleSymbols maps the theme onto the plain-text renderer.
func (t Theme) ConsoleSymbols() console.Symbols {
	return console.Symbols{Empty: t.Symbols.Water, Ship: t.Symbols.Ship, Hit: t.Symbols.Hit, Miss: t.Symbols.Miss}
}

func (t Theme) ConsoleColors() console.Colors {
	return console.Colors{Empty: t.Colors.WaterColor, Ship: t.Colors.ShipColor, Hit: t.Colors.HitColor, Miss: t.Colors.MissColor}
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
