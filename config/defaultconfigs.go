package config

import (
	"seabattle-local/engine"
)

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:   true,
		DrawLastShotBackground: true,
		ColorOutput:            true,
		Colors: ConfigColors{
			WaterColor:      24,
			WaterColorAlt:   25,
			ShipColor:       250,
			HitColor:        196,
			MissColor:       153,
			LineColor:       31,
			CursorColorFG:   16,
			CursorColorBG:   226,
			LastShotColorBG: 208,
		},
		Symbols: ConfigSymbols{
			Water:  ' ',
			Ship:   '■',
			Hit:    'X',
			Miss:   '•',
			Cursor: '+',
		},
	}

	game := engine.DefaultConfig()
	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameSettings{
			GridSize:        game.GridSize,
			Fleet:           game.Fleet,
			MaxAttempts:     game.MaxAttempts,
			ComputerDelayMs: int(game.ComputerDelay.Milliseconds()),
			RevealEnemy:     game.RevealEnemy,
		},
	}
}
