package providers

import (
	"context"

	"github.com/voxgate/voxgate/internal/models"
)

type SpeechTranscriber interface {
	Transcribe(ctx context.Context, req models.TranscriptionRequest) (models.TranscriptionResponse, error)
}

type SpeechTranslator interface {
	TranslateSpeech(ctx context.Context, req models.TranscriptionRequest) (models.TranscriptionResponse, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req models.SpeechRequest) (models.SpeechResponse, error)
}

// TextTranslator translates text into the single language it was built for.
type TextTranslator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TranslatorFactory builds a TextTranslator bound to a target language.
// Factories are called at most once per language per process; the caller
// caches the result.
type TranslatorFactory interface {
	NewTranslator(lang string) (TextTranslator, error)
}

// TranslatorFactoryFunc adapts a function to the TranslatorFactory
// interface, letting builders wrap adapter constructors that return
// concrete types.
type TranslatorFactoryFunc func(lang string) (TextTranslator, error)

func (f TranslatorFactoryFunc) NewTranslator(lang string) (TextTranslator, error) {
	return f(lang)
}
