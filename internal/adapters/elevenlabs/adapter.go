// Package elevenlabs implements text-to-speech against the ElevenLabs API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/voxgate/voxgate/internal/models"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Options configure the ElevenLabs adapter.
type Options struct {
	APIKey string

	// VoiceID is the default voice used when the request carries none.
	VoiceID string

	// BaseURL overrides the API endpoint (tests).
	BaseURL string

	HTTPClient *http.Client
}

type Adapter struct {
	apiKey  string
	voiceID string
	baseURL string
	http    *http.Client
}

func New(opts Options) (*Adapter, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("elevenlabs: api key required")
	}
	if strings.TrimSpace(opts.VoiceID) == "" {
		return nil, errors.New("elevenlabs: voice id required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Adapter{
		apiKey:  opts.APIKey,
		voiceID: opts.VoiceID,
		baseURL: baseURL,
		http:    httpClient,
	}, nil
}

// Synthesize converts text to speech and returns the audio bytes.
func (a *Adapter) Synthesize(ctx context.Context, req models.SpeechRequest) (models.SpeechResponse, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return models.SpeechResponse{}, errors.New("elevenlabs: input is required for speech synthesis")
	}
	voice := strings.TrimSpace(req.Voice)
	if voice == "" {
		voice = a.voiceID
	}

	payload, err := json.Marshal(map[string]string{"text": input})
	if err != nil {
		return models.SpeechResponse{}, fmt.Errorf("elevenlabs: encoding payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", a.baseURL, voice)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return models.SpeechResponse{}, fmt.Errorf("elevenlabs: creating request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", acceptHeader(req.Format))

	resp, err := a.http.Do(httpReq)
	if err != nil {
		return models.SpeechResponse{}, fmt.Errorf("elevenlabs: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return models.SpeechResponse{}, fmt.Errorf("elevenlabs: tts failed: [%d] %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SpeechResponse{}, fmt.Errorf("elevenlabs: reading audio: %w", err)
	}
	return models.SpeechResponse{Audio: audio}, nil
}

func acceptHeader(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "wav":
		return "audio/wav"
	case "opus", "webm":
		return "audio/webm"
	default:
		return "audio/mpeg"
	}
}
