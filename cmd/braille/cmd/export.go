package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/braille/internal/braille"
	"github.com/f3rmion/braille/internal/translate"
)

// Output formats for translate.
const (
	formatText = "text"
	formatJSON = "json"
)

// exportRecord is one translated line as written by --format json.
type exportRecord struct {
	Text      string   `json:"text"`
	IPA       string   `json:"ipa"`
	Words     []string `json:"words"`
	Phonetics []string `json:"phonetics"`
	Found     bool     `json:"found"`
}

// readInput turns a command argument into Braille text: Braille passes
// through and anything else is read as dot notation.
func readInput(s string) (string, error) {
	if braille.ContainsCells(s) {
		return s, nil
	}
	text, err := braille.EncodeText(s)
	if err != nil {
		return "", fmt.Errorf("input is neither braille nor dot numbers: %w", err)
	}
	return text, nil
}

// checkFormat rejects output formats writeResults cannot produce.
func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q: want %s or %s", format, formatText, formatJSON)
	}
}

// writeResults writes translated lines in the given format.
func writeResults(w io.Writer, results []translate.Result, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	switch format {
	case formatJSON:
		records := make([]exportRecord, len(results))
		for i, r := range results {
			records[i] = exportRecord{
				Text:      r.Text(),
				IPA:       r.PhoneticText(),
				Words:     r.Words,
				Phonetics: r.Phonetics,
				Found:     !r.Unresolved(),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records)

	case formatText:
		var b strings.Builder
		for _, r := range results {
			if r.Unresolved() {
				fmt.Fprintf(&b, "%s\t(translation not found)\n", r.Text())
				continue
			}
			fmt.Fprintf(&b, "%s\t/%s/\n", r.Text(), r.PhoneticText())
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
	return nil
}
