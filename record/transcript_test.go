package record

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seabattle-local/types"
)

func sample() *Transcript {
	tr := New("ab12cd", 6)
	tr.Started = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tr.Add(types.SideUser, types.At(2, 2), "hit")
	tr.Add(types.SideUser, types.At(2, 3), "sunk")
	tr.Add(types.SideComputer, types.At(0, 5), "miss")
	tr.Result = "user won"
	return tr
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	_, err := sample().WriteTo(&buf)
	require.NoError(t, err)

	want := strings.Join([]string{
		"# seabattle transcript",
		"session ab12cd",
		"size 6",
		"started 2024-03-01T12:30:00Z",
		"1 user 2 2 hit",
		"2 user 2 3 sunk",
		"3 computer 0 5 miss",
		"result user won",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestParseReadsWrittenTranscript(t *testing.T) {
	var buf bytes.Buffer
	orig := sample()
	_, err := orig.WriteTo(&buf)
	require.NoError(t, err)

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, orig.Session, got.Session)
	assert.Equal(t, orig.Size, got.Size)
	assert.True(t, orig.Started.Equal(got.Started))
	assert.Equal(t, orig.Result, got.Result)
	assert.Equal(t, orig.Entries(), got.Entries())
}

func TestParseRejectsBadLines(t *testing.T) {
	for name, input := range map[string]string{
		"short":         "1 user 2 2\n",
		"side":          "1 robot 2 2 hit\n",
		"outcome":       "1 user 2 2 splash\n",
		"number":        "1 user x 2 hit\n",
		"out of order":  "2 user 1 1 miss\n",
		"size":          "size six\n",
		"negative size": "size -1\n",
		"zero size":     "size 0\n",
		"huge size":     "size 100000\n",
	} {
		_, err := Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestLast(t *testing.T) {
	tr := sample()
	last := tr.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, 2, last[0].Seq)
	assert.Equal(t, 3, last[1].Seq)
	assert.Len(t, tr.Last(10), 3)
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.txt")
	got, err := SaveFile(sample(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3 computer 0 5 miss")
}
