package record

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seabattle-local/types"
)

// GameInfo describes a saved transcript.
type GameInfo struct {
	FilePath string
	FileName string
	Session  string
	Size     int
	Date     string
	Result   string
	Shots    int
}

// ParseFile reads the transcript at path.
func ParseFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ListGames scans dir for transcripts and returns their headers, newest
// first (file names start with a timestamp). Unreadable files are skipped.
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read transcript dir: %w", err)
	}

	var games []GameInfo
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		t, err := ParseFile(path)
		if err != nil {
			continue
		}
		date := ""
		if !t.Started.IsZero() {
			date = t.Started.Local().Format("2006-01-02 15:04")
		}
		games = append(games, GameInfo{
			FilePath: path,
			FileName: e.Name(),
			Session:  t.Session,
			Size:     t.Size,
			Date:     date,
			Result:   t.Result,
			Shots:    t.Len(),
		})
	}
	return games, nil
}

// Replay marks every shot of t on the board it landed on. Fleets are not
// recorded, so only hits and misses appear. The result is indexed by the
// side that owns the board.
func Replay(t *Transcript) [2]*types.BoardView {
	views := [2]*types.BoardView{types.NewBoardView(t.Size), types.NewBoardView(t.Size)}
	for _, e := range t.entries {
		v := views[e.Side.Opponent()]
		if !e.Target.Within(v.Size) {
			continue
		}
		state := types.CellHit
		switch e.Outcome {
		case "miss":
			state = types.CellMiss
		case "sunk":
			v.Destroyed++
		}
		v.Cells[e.Target.Row][e.Target.Col] = state
	}
	return views
}
