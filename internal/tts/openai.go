// Package tts synthesizes speech through the OpenAI audio API and guesses
// the language of a text for automatic voice selection.
package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNoAPIKey is returned when no OpenAI API key is configured.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY not set")

// Options configures the OpenAI synthesizer.
type Options struct {
	APIKey       string  // Falls back to $OPENAI_API_KEY
	BaseURL      string  // Optional API base URL
	Model        string  // e.g. "gpt-4o-mini-tts"
	Voice        string  // e.g. "alloy"
	Speed        float64 // 0 uses the API default
	Instructions string  // Extra delivery hints
}

// OpenAI synthesizes MP3 speech. It implements audio.Synthesizer.
type OpenAI struct {
	client openai.Client
	opts   Options
}

// NewOpenAI creates a synthesizer.
func NewOpenAI(opts Options) (*OpenAI, error) {
	if opts.APIKey == "" {
		opts.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if opts.Model == "" {
		opts.Model = openai.SpeechModelGPT4oMiniTTS
	}
	if opts.Voice == "" {
		opts.Voice = string(openai.AudioSpeechNewParamsVoiceAlloy)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(1),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	slog.Debug("openai speech client created", "model", opts.Model, "voice", opts.Voice)
	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		opts:   opts,
	}, nil
}

// Synthesize returns MP3 audio for text spoken in lang.
func (o *OpenAI) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	params := openai.AudioSpeechNewParams{
		Input:          text,
		Model:          o.opts.Model,
		Voice:          openai.AudioSpeechNewParamsVoice(o.opts.Voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	if o.opts.Speed > 0 {
		params.Speed = openai.Float(o.opts.Speed)
	}
	if instr := o.instructions(lang); instr != "" {
		params.Instructions = openai.String(instr)
	}

	resp, err := o.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading speech: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openai speech: empty response")
	}
	return data, nil
}

// instructions combines the language hint with the configured hints.
// The tts-1 models ignore instructions, so none are sent to them.
func (o *OpenAI) instructions(lang string) string {
	if o.opts.Model == openai.SpeechModelTTS1 || o.opts.Model == openai.SpeechModelTTS1HD {
		return ""
	}
	hint := ""
	if name, ok := languageNames[lang]; ok {
		hint = "Speak in " + name + "."
	}
	switch {
	case hint == "":
		return o.opts.Instructions
	case o.opts.Instructions == "":
		return hint
	default:
		return hint + " " + o.opts.Instructions
	}
}

var languageNames = map[string]string{
	"lg": "Luganda",
	"en": "English",
}
