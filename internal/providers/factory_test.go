package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxgate/voxgate/internal/config"
	"github.com/voxgate/voxgate/internal/models"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Backends = config.BackendConfig{STT: "openai", TTS: "openai", Translator: "openai"}
	cfg.Providers.OpenAIKey = "sk-test"
	cfg.Providers.CloudflareAccountID = "acct"
	cfg.Providers.CloudflareToken = "token"
	cfg.Providers.ElevenLabsKey = "xi"
	cfg.Providers.ElevenLabsVoiceID = "voice"
	cfg.Models.TranslatorModel = "gpt-4o-mini"
	return cfg
}

func TestDefaultDefinitionsRegistered(t *testing.T) {
	defs := DefaultDefinitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	require.Contains(t, names, "openai")
	require.Contains(t, names, "workersai")
	require.Contains(t, names, "elevenlabs")
}

func TestBuildSetOpenAI(t *testing.T) {
	set, err := NewFactory(validConfig()).BuildSet()
	require.NoError(t, err)
	require.NotNil(t, set.Transcriber)
	require.NotNil(t, set.SpeechTranslate)
	require.NotNil(t, set.Synthesizer)
	require.NotNil(t, set.Translators)
	require.Equal(t, "openai", set.STTProvider)
	require.Equal(t, "openai", set.TTSProvider)
	require.Equal(t, "openai", set.TranslatorProvider)
}

func TestBuildSetMixedBackends(t *testing.T) {
	cfg := validConfig()
	cfg.Backends = config.BackendConfig{STT: "workersai", TTS: "elevenlabs", Translator: "workersai"}

	set, err := NewFactory(cfg).BuildSet()
	require.NoError(t, err)
	require.Equal(t, "workersai", set.STTProvider)
	require.Equal(t, "elevenlabs", set.TTSProvider)
	require.Equal(t, "workersai", set.TranslatorProvider)
}

func TestBuildSetUnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Backends.STT = "nonesuch"

	_, err := NewFactory(cfg).BuildSet()
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown provider "nonesuch"`)
}

func TestBuildSetCapabilityMismatch(t *testing.T) {
	// elevenlabs is synthesis-only, so it cannot serve speech-to-text.
	cfg := validConfig()
	cfg.Backends.STT = "elevenlabs"

	_, err := NewFactory(cfg).BuildSet()
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not support transcription")
}

func TestFactoryMemoizesBackends(t *testing.T) {
	builds := 0
	RegisterDefinition(Definition{
		Name:         "counting",
		Capabilities: []string{"tts", "text_translation"},
		Builder: func(cfg *config.Config) (Backend, error) {
			builds++
			return Backend{
				Synthesizer: stubSynthesizer{},
				Translators: TranslatorFactoryFunc(func(lang string) (TextTranslator, error) {
					return nil, nil
				}),
			}, nil
		},
	})

	cfg := validConfig()
	cfg.Backends = config.BackendConfig{STT: "openai", TTS: "counting", Translator: "counting"}

	_, err := NewFactory(cfg).BuildSet()
	require.NoError(t, err)
	require.Equal(t, 1, builds, "one provider serving two capabilities builds once")
}

type stubSynthesizer struct{}

func (stubSynthesizer) Synthesize(context.Context, models.SpeechRequest) (models.SpeechResponse, error) {
	panic("unused")
}
