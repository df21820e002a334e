package translate

import (
	"context"
	"errors"

	"github.com/f3rmion/braille/internal/braille"
)

// Dictionary looks up whole words by their exact cell pattern.
type Dictionary interface {
	LookupCommonWord(ctx context.Context, pattern string) (braille.WordEntry, bool, error)
}

// CharacterStore looks up single-cell mappings kept outside the compiled
// table.
type CharacterStore interface {
	LookupCharacter(ctx context.Context, code string) (braille.CharacterEntry, bool, error)
}

// Dictionaries chains dictionaries; the first hit wins. Errors from one
// dictionary do not stop the search. When nothing hits, the joined errors
// are returned.
func Dictionaries(ds ...Dictionary) Dictionary {
	var chain dictionaryChain
	for _, d := range ds {
		if d != nil {
			chain = append(chain, d)
		}
	}
	return chain
}

type dictionaryChain []Dictionary

func (c dictionaryChain) LookupCommonWord(ctx context.Context, pattern string) (braille.WordEntry, bool, error) {
	var errs []error
	for _, d := range c {
		e, ok, err := d.LookupCommonWord(ctx, pattern)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return e, true, nil
		}
	}
	return braille.WordEntry{}, false, errors.Join(errs...)
}
