package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	c := DefaultConfig
	c.Game.Fleet = append([]int(nil), DefaultConfig.Game.Fleet...)
	return c
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := defaults()
	require.NoError(t, c.Validate())
	assert.Equal(t, 6, c.Game.GridSize)
	assert.Equal(t, []int{3, 2, 2, 1, 1, 1, 1}, c.Game.Fleet)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"control rune":   func(c *Config) { c.Theme.Symbols.Ship = '\t' },
		"c1 rune":        func(c *Config) { c.Theme.Symbols.Hit = 0x85 },
		"grid too small": func(c *Config) { c.Game.GridSize = 3 },
		"grid too large": func(c *Config) { c.Game.GridSize = 11 },
		"empty fleet":    func(c *Config) { c.Game.Fleet = nil },
		"long vessel":    func(c *Config) { c.Game.Fleet = []int{4} },
		"zero vessel":    func(c *Config) { c.Game.Fleet = []int{0} },
		"crowded fleet":  func(c *Config) { c.Game.GridSize = 4; c.Game.Fleet = []int{3, 3, 3, 3} },
		"no attempts":    func(c *Config) { c.Game.MaxAttempts = 0 },
		"negative delay": func(c *Config) { c.Game.ComputerDelayMs = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := defaults()
			mutate(&c)
			err := c.Validate()
			var invalid *InvalidConfig
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvGridSize:      "8",
		EnvMaxAttempts:   "50",
		EnvComputerDelay: "0",
		EnvSeed:          "42",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	c := defaults()
	require.NoError(t, c.ApplyEnv(lookup))
	assert.Equal(t, 8, c.Game.GridSize)
	assert.Equal(t, 50, c.Game.MaxAttempts)
	assert.Equal(t, 0, c.Game.ComputerDelayMs)
	assert.Equal(t, int64(42), c.Game.Seed)

	env[EnvGridSize] = "big"
	err := c.ApplyEnv(lookup)
	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), EnvGridSize)
}

func TestGameConfig(t *testing.T) {
	c := defaults()
	c.Game.ComputerDelayMs = 125
	c.Game.RevealEnemy = true
	gc := c.GameConfig()
	assert.Equal(t, 125*time.Millisecond, gc.ComputerDelay)
	assert.True(t, gc.RevealEnemy)
	assert.Equal(t, len(c.Game.Fleet), gc.WinThreshold())

	gc.Fleet[0] = 1
	assert.Equal(t, 3, c.Game.Fleet[0])
}

func TestThemeMapping(t *testing.T) {
	th := DefaultTheme
	assert.Equal(t, '■', th.ConsoleSymbols().Ship)
	assert.Equal(t, th.Colors.HitColor, th.ConsoleColors().Hit)
}

func TestSaveAndReadCfgFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := defaults()
	c.Game.GridSize = 9
	c.Theme.Symbols.Miss = '~'
	require.NoError(t, saveCfgFile(path, &c, 0600))

	var got Config
	require.NoError(t, readCfgFile(path, &got))
	assert.Equal(t, c, got)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	var invalid *InvalidConfig
	assert.ErrorAs(t, readCfgFile(path, &got), &invalid)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvSeed+"=7\n"), 0600))
	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)
	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "7", os.Getenv(EnvSeed))
	os.Unsetenv(EnvSeed)
}
