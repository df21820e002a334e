// Package clipboard copies translations to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the platform has no clipboard tool.
var ErrUnavailable = errors.New("clipboard unavailable")

var (
	unsupported = func() bool { return clipboard.Unsupported }
	writeAll    = clipboard.WriteAll
)

// Write copies text to the system clipboard.
func Write(text string) error {
	if unsupported() {
		return ErrUnavailable
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Available reports whether Write can succeed on this system.
func Available() bool {
	return !unsupported()
}
