// Package openai wraps the official OpenAI SDK for Whisper transcription,
// speech translation, text-to-speech, and chat-based text translation.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/voxgate/voxgate/internal/models"
)

// Options configure the OpenAI adapter.
type Options struct {
	APIKey       string
	BaseURL      string
	Organization string

	// TranslatorModel is the chat model used for text translation.
	TranslatorModel string

	Extra []option.RequestOption
}

// Adapter serves every capability through one SDK client.
type Adapter struct {
	client          *openai.Client
	translatorModel string
}

// New creates an adapter using the provided API key and optional base
// URL/organization.
func New(opts Options) (*Adapter, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai: api key required")
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if strings.TrimSpace(opts.BaseURL) != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(strings.TrimRight(opts.BaseURL, "/")))
	}
	if strings.TrimSpace(opts.Organization) != "" {
		requestOpts = append(requestOpts, option.WithOrganization(strings.TrimSpace(opts.Organization)))
	}
	requestOpts = append(requestOpts, opts.Extra...)

	client := openai.NewClient(requestOpts...)
	return &Adapter{client: &client, translatorModel: opts.TranslatorModel}, nil
}

// Transcribe performs speech-to-text via the Audio Transcriptions API.
func (a *Adapter) Transcribe(ctx context.Context, req models.TranscriptionRequest) (models.TranscriptionResponse, error) {
	if req.Input.Reader == nil {
		return models.TranscriptionResponse{}, errors.New("openai: audio input required")
	}
	params := openai.AudioTranscriptionNewParams{
		File:  req.Input.Reader,
		Model: openai.AudioModel(req.Model),
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		params.Language = openai.String(lang)
	}
	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		params.Prompt = openai.String(prompt)
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Temperature))
	}
	resp, err := a.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return models.TranscriptionResponse{}, err
	}
	return models.TranscriptionResponse{Text: resp.Text, Model: req.Model}, nil
}

// TranslateSpeech translates audio to English via the Audio Translations API.
func (a *Adapter) TranslateSpeech(ctx context.Context, req models.TranscriptionRequest) (models.TranscriptionResponse, error) {
	if req.Input.Reader == nil {
		return models.TranscriptionResponse{}, errors.New("openai: audio input required")
	}
	params := openai.AudioTranslationNewParams{
		File:  req.Input.Reader,
		Model: openai.AudioModel(req.Model),
	}
	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		params.Prompt = openai.String(prompt)
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Temperature))
	}
	resp, err := a.client.Audio.Translations.New(ctx, params)
	if err != nil {
		return models.TranscriptionResponse{}, err
	}
	return models.TranscriptionResponse{Text: resp.Text, Model: req.Model, Language: "en"}, nil
}

// Synthesize produces speech audio via the Audio Speech API.
func (a *Adapter) Synthesize(ctx context.Context, req models.SpeechRequest) (models.SpeechResponse, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return models.SpeechResponse{}, errors.New("openai: input is required for speech synthesis")
	}
	voice := strings.TrimSpace(req.Voice)
	if voice == "" {
		voice = "alloy"
	}
	format := strings.TrimSpace(req.Format)
	if format == "" {
		format = "mp3"
	}
	params := openai.AudioSpeechNewParams{
		Model: openai.SpeechModel(req.Model),
		Input: input,
		Voice: openai.AudioSpeechNewParamsVoice(voice),
	}
	params.ResponseFormat = openai.AudioSpeechNewParamsResponseFormat(format)
	resp, err := a.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return models.SpeechResponse{}, err
	}
	defer resp.Body.Close()
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SpeechResponse{}, err
	}
	return models.SpeechResponse{Audio: audio}, nil
}

// NewTranslator returns a chat-completion translator bound to one target
// language.
func (a *Adapter) NewTranslator(lang string) (*ChatTranslator, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, errors.New("openai: target language required")
	}
	model := a.translatorModel
	if model == "" {
		return nil, errors.New("openai: translator model not configured")
	}
	return &ChatTranslator{
		client: a.client,
		model:  model,
		system: translationSystemPrompt(lang),
	}, nil
}

// ChatTranslator translates text into a fixed target language through the
// Chat Completions API.
type ChatTranslator struct {
	client *openai.Client
	model  string
	system string
}

func (t *ChatTranslator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("openai: text required")
	}
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(t.system),
			openai.UserMessage(text),
		},
	}
	resp, err := t.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// languageNames maps supported ISO codes to names the chat model responds to
// reliably; unknown codes are passed through verbatim.
var languageNames = map[string]string{
	"ar": "Arabic",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"hi": "Hindi",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"zh": "Chinese",
}

func translationSystemPrompt(lang string) string {
	name := languageNames[lang]
	if name == "" {
		name = lang
	}
	return fmt.Sprintf("You are a translation engine. Translate the user's text into %s. Reply with the translation only, no commentary.", name)
}
