package braille

// Unknown is the grapheme produced for a cell with no mapping.
const Unknown = "?"

// CharacterEntry is a stored mapping from a single Braille cell.
type CharacterEntry struct {
	Code        string `yaml:"code" json:"braille_code"`                // The cell, e.g. "⠁"
	Grapheme    string `yaml:"grapheme" json:"luganda_char"`            // The Luganda grapheme
	Phonetic    string `yaml:"phonetic,omitempty" json:"ipa"`           // IPA rendering
	Description string `yaml:"description,omitempty" json:"description"` // e.g. "Luganda vowel a"
}

// WordEntry is a whole-word dictionary row keyed by its cell pattern.
type WordEntry struct {
	Pattern  string `yaml:"pattern" json:"pattern"`                       // Braille cells only, no spaces
	Word     string `yaml:"word" json:"word"`                             // Luganda word
	Phonetic string `yaml:"phonetic,omitempty" json:"phonetic,omitempty"` // Stored IPA, may be empty
	Meaning  string `yaml:"meaning,omitempty" json:"meaning,omitempty"`   // English meaning
	Category string `yaml:"category,omitempty" json:"category,omitempty"` // e.g. "nouns"
}
