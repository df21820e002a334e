package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAI(Options{})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	t.Setenv("OPENAI_API_KEY", "  sk-test\n")
	o, err := NewOpenAI(Options{})
	require.NoError(t, err)
	assert.Equal(t, "sk-test", o.opts.APIKey)
	assert.Equal(t, "gpt-4o-mini-tts", o.opts.Model)
	assert.Equal(t, "alloy", o.opts.Voice)
}

func TestSynthesize(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake"))
	}))
	defer srv.Close()

	o, err := NewOpenAI(Options{
		APIKey:  "sk-test",
		BaseURL: srv.URL + "/v1",
		Voice:   "nova",
		Speed:   1.25,
	})
	require.NoError(t, err)

	data, err := o.Synthesize(context.Background(), "mukwano", "lg")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake"), data)

	assert.Equal(t, "mukwano", got["input"])
	assert.Equal(t, "nova", got["voice"])
	assert.Equal(t, "gpt-4o-mini-tts", got["model"])
	assert.Equal(t, "mp3", got["response_format"])
	assert.Equal(t, 1.25, got["speed"])
	assert.Equal(t, "Speak in Luganda.", got["instructions"])
}

func TestSynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad voice","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	o, err := NewOpenAI(Options{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = o.Synthesize(context.Background(), "hello", "en")
	assert.Error(t, err)
}

func TestInstructions(t *testing.T) {
	tests := []struct {
		name  string
		model string
		extra string
		lang  string
		want  string
	}{
		{"luganda", "gpt-4o-mini-tts", "", "lg", "Speak in Luganda."},
		{"english with extra", "gpt-4o-mini-tts", "Speak slowly.", "en", "Speak in English. Speak slowly."},
		{"unknown language", "gpt-4o-mini-tts", "Speak slowly.", "fr", "Speak slowly."},
		{"tts-1 ignores", "tts-1", "Speak slowly.", "lg", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &OpenAI{opts: Options{Model: tt.model, Instructions: tt.extra}}
			assert.Equal(t, tt.want, o.instructions(tt.lang))
		})
	}
}

func TestDetector(t *testing.T) {
	d := NewDetector("lg")

	assert.Equal(t, "lg", d.Detect(""))
	assert.Equal(t, "lg", d.Detect("   "))
	assert.Equal(t, "en", d.Detect("The weather is very nice today and we are going to the market"))

	assert.Equal(t, "en", d.Resolve("en", "mukwano"))
	assert.Equal(t, "lg", d.Resolve("lg", "hello there"))
	assert.Equal(t, "lg", d.Resolve("auto", ""))
}

func TestDetectorUsesModels(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		text     string
		want     string
	}{
		{name: "english over luganda fallback", fallback: "lg", text: "The weather is very nice today and we are going to the market", want: "en"},
		{name: "luganda over english fallback", fallback: "en", text: "Abantu bangi baagenze mu katale okugula emmere n'ebijanjaalo", want: "lg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDetector(tt.fallback).Detect(tt.text))
		})
	}
}
