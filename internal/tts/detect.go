package tts

import (
	"strings"

	"github.com/pemistahl/lingua-go"
	// Models register themselves with lingua on init.
	_ "github.com/pemistahl/lingua-go/language-models/en"
	_ "github.com/pemistahl/lingua-go/language-models/lg"
)

// Detector guesses whether a text is Luganda or English.
type Detector struct {
	detector lingua.LanguageDetector
	fallback string
}

// NewDetector builds a detector that answers fallback when unsure.
func NewDetector(fallback string) *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Ganda, lingua.English).
			Build(),
		fallback: fallback,
	}
}

// Detect returns "lg" or "en". Blank or ambiguous text yields the fallback.
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return d.fallback
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return d.fallback
	}
	switch lang {
	case lingua.Ganda:
		return "lg"
	case lingua.English:
		return "en"
	default:
		return d.fallback
	}
}

// Resolve maps a requested language to a concrete one. "auto" runs Detect.
func (d *Detector) Resolve(lang, text string) string {
	if lang == "auto" {
		return d.Detect(text)
	}
	return lang
}
