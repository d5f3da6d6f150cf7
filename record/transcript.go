// Package record keeps the shot-by-shot transcript of a game and writes it
// as plain text, one shot per line.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"seabattle-local/battlefield"
	"seabattle-local/types"
)

// ErrMalformed is returned by Parse for lines it cannot read.
var ErrMalformed = errors.New("malformed transcript")

const header = "# seabattle transcript"

// Entry is one valid shot.
type Entry struct {
	Seq     int
	Side    types.Side
	Target  types.Coordinate
	Outcome string // "miss", "hit" or "sunk"
}

func (e Entry) String() string {
	return fmt.Sprintf("%d %s %d %d %s", e.Seq, e.Side, e.Target.Row, e.Target.Col, e.Outcome)
}

// Transcript is the ordered list of shots of one game.
type Transcript struct {
	Session string
	Size    int
	Started time.Time
	Result  string
	entries []Entry
}

// New starts an empty transcript.
func New(session string, size int) *Transcript {
	return &Transcript{Session: session, Size: size, Started: time.Now()}
}

// Add appends a shot and returns the stored entry.
func (t *Transcript) Add(side types.Side, target types.Coordinate, outcome string) Entry {
	e := Entry{Seq: len(t.entries) + 1, Side: side, Target: target, Outcome: outcome}
	t.entries = append(t.entries, e)
	return e
}

// Entries returns a copy of the shots so far.
func (t *Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of shots.
func (t *Transcript) Len() int { return len(t.entries) }

// Last returns up to n most recent entries, oldest first.
func (t *Transcript) Last(n int) []Entry {
	start := 0
	if len(t.entries) > n {
		start = len(t.entries) - n
	}
	return append([]Entry(nil), t.entries[start:]...)
}

// WriteTo writes the transcript in its text form.
func (t *Transcript) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header)
	fmt.Fprintf(&b, "session %s\n", t.Session)
	fmt.Fprintf(&b, "size %d\n", t.Size)
	fmt.Fprintf(&b, "started %s\n", t.Started.UTC().Format(time.RFC3339))
	for _, e := range t.entries {
		fmt.Fprintf(&b, "%s\n", e)
	}
	if t.Result != "" {
		fmt.Fprintf(&b, "result %s\n", t.Result)
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Parse reads a transcript written by WriteTo.
func Parse(r io.Reader) (*Transcript, error) {
	t := &Transcript{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, rest, _ := strings.Cut(text, " ")
		var err error
		switch key {
		case "session":
			t.Session = rest
		case "size":
			t.Size, err = strconv.Atoi(rest)
			if err == nil && (t.Size < 1 || t.Size > battlefield.MaxSize) {
				err = fmt.Errorf("size %d out of range 1..%d", t.Size, battlefield.MaxSize)
			}
		case "started":
			t.Started, err = time.Parse(time.RFC3339, rest)
		case "result":
			t.Result = rest
		default:
			var e Entry
			e, err = parseEntry(text)
			if err == nil {
				if e.Seq != len(t.entries)+1 {
					err = fmt.Errorf("shot %d out of order", e.Seq)
				}
				t.entries = append(t.entries, e)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseEntry(text string) (Entry, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return Entry{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}
	var nums [3]int
	for i, idx := range []int{0, 2, 3} {
		n, err := strconv.Atoi(fields[idx])
		if err != nil {
			return Entry{}, err
		}
		nums[i] = n
	}
	var side types.Side
	switch fields[1] {
	case types.SideUser.String():
		side = types.SideUser
	case types.SideComputer.String():
		side = types.SideComputer
	default:
		return Entry{}, fmt.Errorf("unknown side %q", fields[1])
	}
	switch fields[4] {
	case "miss", "hit", "sunk":
	default:
		return Entry{}, fmt.Errorf("unknown outcome %q", fields[4])
	}
	return Entry{Seq: nums[0], Side: side, Target: types.At(nums[1], nums[2]), Outcome: fields[4]}, nil
}

// DefaultDir is where transcripts go when no path is given.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "seabattle-local", "games")
}

// SaveFile writes t to path, or to a timestamped file in DefaultDir when path is empty.
func SaveFile(t *Transcript, path string) (string, error) {
	if path == "" {
		dir := DefaultDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create transcript dir: %w", err)
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%s.txt", t.Started.Format("2006-01-02_150405"), t.Session))
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create transcript: %w", err)
	}
	if _, err := t.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write transcript: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close transcript: %w", err)
	}
	return path, nil
}
