package providers

import (
	native "github.com/voxgate/voxgate/internal/adapters/openai"
	"github.com/voxgate/voxgate/internal/config"
)

func init() {
	RegisterDefinition(Definition{
		Name:        "openai",
		Description: "OpenAI native API (whisper transcription/translation, speech, chat translation)",
		Capabilities: []string{
			"stt", "speech_translation", "tts", "text_translation",
		},
		Builder: buildOpenAIBackend,
	})
}

func buildOpenAIBackend(cfg *config.Config) (Backend, error) {
	adapter, err := native.New(native.Options{
		APIKey:          cfg.Providers.OpenAIKey,
		BaseURL:         cfg.Providers.OpenAIBaseURL,
		Organization:    cfg.Providers.OpenAIOrganization,
		TranslatorModel: cfg.Models.TranslatorModel,
	})
	if err != nil {
		return Backend{}, err
	}
	return Backend{
		Transcriber:     adapter,
		SpeechTranslate: adapter,
		Synthesizer:     adapter,
		Translators: TranslatorFactoryFunc(func(lang string) (TextTranslator, error) {
			return adapter.NewTranslator(lang)
		}),
	}, nil
}
