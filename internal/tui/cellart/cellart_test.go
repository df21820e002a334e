package cellart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/braille/internal/braille"
)

// region reports whether any rune in the given line/column window is lit.
func region(lines [][]rune, row0, row1, col0, col1 int) bool {
	for r := row0; r < row1; r++ {
		for c := col0; c < col1; c++ {
			if lines[r][c] != ' ' {
				return true
			}
		}
	}
	return false
}

func split(s string) [][]rune {
	var out [][]rune
	for _, l := range strings.Split(s, "\n") {
		out = append(out, []rune(l))
	}
	return out
}

func TestCellEmpty(t *testing.T) {
	out := Cell(braille.Empty, 8, 6, false)
	lines := split(out)
	require.Len(t, lines, 6)
	for _, l := range lines {
		assert.Len(t, l, 8)
	}
	assert.Empty(t, strings.Trim(out, " \n"))
}

func TestCellDotPositions(t *testing.T) {
	const cols, rows = 8, 6
	for d := braille.MinDot; d <= braille.MaxDot; d++ {
		t.Run(braille.MustDotSet(d).String(), func(t *testing.T) {
			lines := split(Cell(braille.MustDotSet(d), cols, rows, false))
			col, row := position(d)
			for c := 0; c < 2; c++ {
				for r := 0; r < 3; r++ {
					lit := region(lines, r*2, r*2+2, c*4, c*4+4)
					assert.Equal(t, c == col && r == row, lit, "column %d row %d", c, r)
				}
			}
		})
	}
}

func TestCellRings(t *testing.T) {
	out := Cell(braille.Empty, 12, 9, true)
	assert.NotEmpty(t, strings.Trim(out, " \n"))
}

func TestCellTooSmall(t *testing.T) {
	assert.Empty(t, Cell(braille.MustDotSet(1), 1, 6, false))
	assert.Empty(t, Cell(braille.MustDotSet(1), 4, 2, false))
}

func TestGrid(t *testing.T) {
	assert.Equal(t, "● ●\n○ ○\n○ ●", Grid(braille.MustDotSet(1, 4, 6)))
	assert.Equal(t, "○ ○\n○ ○\n○ ○", Grid(braille.Empty))
}

func TestGlyph(t *testing.T) {
	out := Glyph("ny", 16, 8)
	lines := split(out)
	require.Len(t, lines, 8)
	assert.NotEmpty(t, strings.Trim(out, " \n"))

	assert.Empty(t, Glyph("", 16, 8))
	assert.Equal(t, out, CachedGlyph("ny", 16, 8))
}
