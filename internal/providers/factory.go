package providers

import (
	"fmt"

	"github.com/voxgate/voxgate/internal/config"
)

// Set holds the concrete capability implementations selected by config,
// one per route the service serves.
type Set struct {
	Transcriber     SpeechTranscriber
	SpeechTranslate SpeechTranslator
	Synthesizer     SpeechSynthesizer
	Translators     TranslatorFactory

	// Provider names for metrics and usage labels.
	STTProvider        string
	TTSProvider        string
	TranslatorProvider string
}

// Factory resolves registered builders and memoizes constructed backends so
// one provider serving several capabilities is built once.
type Factory struct {
	cfg      *config.Config
	builders map[string]Builder
	built    map[string]Backend
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		cfg:      cfg,
		builders: cloneDefaultBuilders(),
		built:    make(map[string]Backend),
	}
}

func (f *Factory) backend(name string) (Backend, error) {
	if b, ok := f.built[name]; ok {
		return b, nil
	}
	builder, ok := f.builders[name]
	if !ok {
		return Backend{}, fmt.Errorf("providers: unknown provider %q", name)
	}
	b, err := builder(f.cfg)
	if err != nil {
		return Backend{}, fmt.Errorf("providers: build %s: %w", name, err)
	}
	b.Name = name
	f.built[name] = b
	return b, nil
}

// BuildSet wires the configured backend for each capability, failing when a
// selected provider does not implement it.
func (f *Factory) BuildSet() (*Set, error) {
	stt, err := f.backend(f.cfg.Backends.STT)
	if err != nil {
		return nil, err
	}
	if stt.Transcriber == nil {
		return nil, fmt.Errorf("providers: %s does not support transcription", stt.Name)
	}
	if stt.SpeechTranslate == nil {
		return nil, fmt.Errorf("providers: %s does not support speech translation", stt.Name)
	}

	tts, err := f.backend(f.cfg.Backends.TTS)
	if err != nil {
		return nil, err
	}
	if tts.Synthesizer == nil {
		return nil, fmt.Errorf("providers: %s does not support speech synthesis", tts.Name)
	}

	tr, err := f.backend(f.cfg.Backends.Translator)
	if err != nil {
		return nil, err
	}
	if tr.Translators == nil {
		return nil, fmt.Errorf("providers: %s does not support text translation", tr.Name)
	}

	return &Set{
		Transcriber:        stt.Transcriber,
		SpeechTranslate:    stt.SpeechTranslate,
		Synthesizer:        tts.Synthesizer,
		Translators:        tr.Translators,
		STTProvider:        stt.Name,
		TTSProvider:        tts.Name,
		TranslatorProvider: tr.Name,
	}, nil
}
