package audio

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Player plays an audio file and returns when playback ends.
type Player interface {
	Play(ctx context.Context, path string) error
}

// ExecPlayer plays files through an external command.
type ExecPlayer struct {
	command string
	args    []string
}

// NewExecPlayer returns a player running command with args followed by the
// file path. An empty command picks one for the current OS.
func NewExecPlayer(command string, args ...string) (*ExecPlayer, error) {
	if command != "" {
		if _, err := exec.LookPath(command); err != nil {
			return nil, fmt.Errorf("audio player %q: %w", command, err)
		}
		return &ExecPlayer{command: command, args: args}, nil
	}

	command, args = detectPlayer()
	if command == "" {
		return nil, fmt.Errorf("no audio player found for %s", runtime.GOOS)
	}
	return &ExecPlayer{command: command, args: args}, nil
}

// Command returns the player command line without the file path.
func (p *ExecPlayer) Command() []string {
	return append([]string{p.command}, p.args...)
}

// Play runs the player and waits for it to exit. Cancelling ctx stops
// playback.
func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	args := append(append([]string(nil), p.args...), path)
	cmd := exec.CommandContext(ctx, p.command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("playing %s: %w: %s", path, err, out)
	}
	return nil
}

// detectPlayer returns the first available player for the OS.
func detectPlayer() (string, []string) {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"afplay"}}
	case "linux":
		// ffplay and mpg123 handle MP3 from the speech cache; paplay and
		// aplay only cover WAV and OGG recordings.
		candidates = [][]string{
			{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
			{"mpg123", "-q"},
			{"paplay"},
			{"aplay", "-q"},
		}
	case "windows":
		candidates = [][]string{
			{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
		}
	default:
		candidates = [][]string{{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}}
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return c[0], c[1:]
		}
	}
	return "", nil
}
