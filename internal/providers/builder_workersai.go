package providers

import (
	"github.com/voxgate/voxgate/internal/adapters/workersai"
	"github.com/voxgate/voxgate/internal/config"
)

func init() {
	RegisterDefinition(Definition{
		Name:        "workersai",
		Description: "Cloudflare Workers AI (whisper transcription, m2m100 translation)",
		Capabilities: []string{
			"stt", "speech_translation", "text_translation",
		},
		Builder: buildWorkersAIBackend,
	})
}

func buildWorkersAIBackend(cfg *config.Config) (Backend, error) {
	adapter, err := workersai.New(workersai.Options{
		AccountID:       cfg.Providers.CloudflareAccountID,
		Token:           cfg.Providers.CloudflareToken,
		TranslatorModel: cfg.Models.TranslatorModel,
	})
	if err != nil {
		return Backend{}, err
	}
	return Backend{
		Transcriber:     adapter,
		SpeechTranslate: adapter,
		Translators: TranslatorFactoryFunc(func(lang string) (TextTranslator, error) {
			return adapter.NewTranslator(lang)
		}),
	}, nil
}
