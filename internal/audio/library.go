// Package audio plays spoken feedback: pre-recorded segments from disk,
// synthesized speech with a cache, and the delayed playback of translated
// words after the dot confirmation.
package audio

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions are the accepted segment file types, in lookup order.
var Extensions = []string{".wav", ".mp3", ".ogg"}

// ErrNoAudio is returned when neither a recording nor synthesized speech is
// available for a text.
var ErrNoAudio = errors.New("no audio available")

// FileLibrary finds pre-recorded segments in a directory by the naming
// convention <segment><ext>. It implements segment.Library.
type FileLibrary struct {
	dir string
}

// NewFileLibrary returns a library over dir. The directory need not exist.
func NewFileLibrary(dir string) *FileLibrary {
	return &FileLibrary{dir: dir}
}

// Dir returns the library directory.
func (l *FileLibrary) Dir() string {
	return l.dir
}

// Path returns the file for segment, trying each extension in order.
func (l *FileLibrary) Path(segment string) (string, bool) {
	if !validName(segment) {
		return "", false
	}
	for _, ext := range Extensions {
		p := filepath.Join(l.dir, segment+ext)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Exists reports whether a recording for segment exists.
func (l *FileLibrary) Exists(segment string) bool {
	_, ok := l.Path(segment)
	return ok
}

// Segments lists the recorded segment names.
func (l *FileLibrary) Segments() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !isExtension(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isExtension(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// validName rejects names that could escape the library directory.
func validName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}
