package providers

import (
	"github.com/voxgate/voxgate/internal/adapters/elevenlabs"
	"github.com/voxgate/voxgate/internal/config"
)

func init() {
	RegisterDefinition(Definition{
		Name:         "elevenlabs",
		Description:  "ElevenLabs text-to-speech",
		Capabilities: []string{"tts"},
		Builder:      buildElevenLabsBackend,
	})
}

func buildElevenLabsBackend(cfg *config.Config) (Backend, error) {
	adapter, err := elevenlabs.New(elevenlabs.Options{
		APIKey:  cfg.Providers.ElevenLabsKey,
		VoiceID: cfg.Providers.ElevenLabsVoiceID,
	})
	if err != nil {
		return Backend{}, err
	}
	return Backend{Synthesizer: adapter}, nil
}
