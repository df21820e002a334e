package braille

import "strings"

// The Unicode Braille Patterns block. Each code point's offset from
// CellBlockStart is the bit pattern of its dots.
const (
	CellBlockStart rune = 0x2800
	CellBlockEnd   rune = 0x28FF
)

// IsCell reports whether r lies in the Braille Patterns block.
func IsCell(r rune) bool {
	return r >= CellBlockStart && r <= CellBlockEnd
}

// DecodeCell returns the dots raised in cell. Only the six low bits are
// read; the eight-dot extension bits are ignored.
func DecodeCell(cell rune) DotSet {
	return FromBits(uint8(cell - CellBlockStart))
}

// EncodeCell returns the Braille cell for the given dots.
func EncodeCell(dots ...int) (rune, error) {
	s, err := NewDotSet(dots...)
	if err != nil {
		return 0, err
	}
	return s.Cell(), nil
}

// Cell returns the Unicode Braille cell for the set.
func (s DotSet) Cell() rune {
	return CellBlockStart + rune(s.Bits())
}

// Cells extracts the Braille cells from s in order, dropping everything
// else.
func Cells(s string) []rune {
	var cells []rune
	for _, r := range s {
		if IsCell(r) {
			cells = append(cells, r)
		}
	}
	return cells
}

// Pattern returns s with all non-Braille runes removed.
func Pattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		if IsCell(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsCells reports whether s has at least one Braille cell.
func ContainsCells(s string) bool {
	return strings.ContainsFunc(s, IsCell)
}

// EncodeText converts dot notation to Braille text. Cells are separated by
// whitespace and words by "/", so "146 1/13" becomes "⠩⠁ ⠅".
func EncodeText(s string) (string, error) {
	var words []string
	for _, w := range strings.Split(s, "/") {
		var b strings.Builder
		for _, field := range strings.Fields(w) {
			ds, err := ParseDotSet(field)
			if err != nil {
				return "", err
			}
			b.WriteRune(ds.Cell())
		}
		if b.Len() > 0 {
			words = append(words, b.String())
		}
	}
	return strings.Join(words, " "), nil
}
