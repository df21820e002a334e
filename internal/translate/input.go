package translate

import "errors"

// ErrInvalidInput is returned when Translate receives an input it does not
// recognize. It fails that call only.
var ErrInvalidInput = errors.New("invalid input")

// Input is what the engine translates: a DotSequence or a BrailleText.
type Input interface {
	isInput()
}

// DotSequence is one chord's dots, in any order, as entered live.
type DotSequence []int

// BrailleText is pre-encoded Unicode Braille, words separated by spaces.
type BrailleText string

func (DotSequence) isInput() {}
func (BrailleText) isInput() {}
