// Package workersai calls Cloudflare Workers AI over plain HTTP: Whisper
// models for speech-to-text and m2m100 for text translation.
package workersai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/voxgate/voxgate/internal/models"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Options configure the Workers AI adapter.
type Options struct {
	AccountID string
	Token     string

	// TranslatorModel is the translation model, e.g. @cf/meta/m2m100-1.2b.
	TranslatorModel string

	// BaseURL overrides the Cloudflare API endpoint (tests).
	BaseURL string

	HTTPClient *http.Client
}

// Adapter is a thin client around the /ai/run/{model} endpoint.
type Adapter struct {
	accountID       string
	token           string
	translatorModel string
	baseURL         string
	http            *http.Client
}

func New(opts Options) (*Adapter, error) {
	if strings.TrimSpace(opts.AccountID) == "" {
		return nil, errors.New("workersai: account id required")
	}
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.New("workersai: api token required")
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
		accountID:       opts.AccountID,
		token:           opts.Token,
		translatorModel: opts.TranslatorModel,
		baseURL:         baseURL,
		http:            httpClient,
	}, nil
}

type envelope[T any] struct {
	Result   *T    `json:"result"`
	Success  bool  `json:"success"`
	Errors   []any `json:"errors"`
	Messages []any `json:"messages"`
}

type speechResult struct {
	Text      string  `json:"text"`
	Vtt       string  `json:"vtt"`
	WordCount float64 `json:"word_count"`
}

type translationResult struct {
	TranslatedText string `json:"translated_text"`
}

func run[T any](ctx context.Context, a *Adapter, model, contentType string, body io.Reader) (*T, error) {
	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", a.baseURL, a.accountID, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-ok http response: [%d] %s", resp.StatusCode, resp.Status)
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response json: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("request unsuccessful: %v", env.Errors)
	}
	if env.Result == nil {
		return nil, errors.New("nil result")
	}
	return env.Result, nil
}

// Transcribe posts raw audio bytes to the configured Whisper model.
func (a *Adapter) Transcribe(ctx context.Context, req models.TranscriptionRequest) (models.TranscriptionResponse, error) {
	audio, err := readInput(req.Input)
	if err != nil {
		return models.TranscriptionResponse{}, err
	}
	result, err := run[speechResult](ctx, a, req.Model, "application/octet-stream", bytes.NewReader(audio))
	if err != nil {
		return models.TranscriptionResponse{}, fmt.Errorf("workersai: %w", err)
	}
	return models.TranscriptionResponse{Text: result.Text, Model: req.Model}, nil
}

// TranslateSpeech transcribes the audio, then translates the transcript to
// English with the translation model. Workers AI Whisper has no translate
// task of its own.
func (a *Adapter) TranslateSpeech(ctx context.Context, req models.TranscriptionRequest) (models.TranscriptionResponse, error) {
	transcript, err := a.Transcribe(ctx, req)
	if err != nil {
		return models.TranscriptionResponse{}, err
	}
	translator, err := a.NewTranslator("en")
	if err != nil {
		return models.TranscriptionResponse{}, err
	}
	text, err := translator.Translate(ctx, transcript.Text)
	if err != nil {
		return models.TranscriptionResponse{}, err
	}
	return models.TranscriptionResponse{Text: text, Model: req.Model, Language: "en"}, nil
}

// NewTranslator returns an m2m100-backed translator bound to one target
// language.
func (a *Adapter) NewTranslator(lang string) (*Translator, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, errors.New("workersai: target language required")
	}
	if a.translatorModel == "" {
		return nil, errors.New("workersai: translator model not configured")
	}
	return &Translator{adapter: a, model: a.translatorModel, targetLang: lang}, nil
}

// Translator runs the Workers AI translation model for a fixed target
// language.
type Translator struct {
	adapter    *Adapter
	model      string
	targetLang string
}

func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("workersai: text required")
	}
	payload, err := json.Marshal(map[string]string{
		"text":        text,
		"target_lang": t.targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("workersai: encoding payload: %w", err)
	}
	result, err := run[translationResult](ctx, t.adapter, t.model, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("workersai: %w", err)
	}
	return result.TranslatedText, nil
}

func readInput(input models.AudioInput) ([]byte, error) {
	if input.Reader != nil {
		data, err := io.ReadAll(input.Reader)
		if err != nil {
			return nil, fmt.Errorf("workersai: reading audio: %w", err)
		}
		return data, nil
	}
	if input.Path != "" {
		data, err := os.ReadFile(input.Path)
		if err != nil {
			return nil, fmt.Errorf("workersai: reading audio file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("workersai: audio input required")
}
