package workersai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxgate/voxgate/internal/models"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	adapter, err := New(Options{
		AccountID:       "acct-123",
		Token:           "cf-token",
		TranslatorModel: "@cf/meta/m2m100-1.2b",
		BaseURL:         srv.URL,
	})
	require.NoError(t, err)
	return adapter
}

func TestNewValidation(t *testing.T) {
	_, err := New(Options{Token: "t"})
	require.Error(t, err)
	_, err = New(Options{AccountID: "a"})
	require.Error(t, err)
}

func TestTranscribe(t *testing.T) {
	audio := []byte("fake-audio-bytes")
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/accounts/acct-123/ai/run/@cf/openai/whisper", r.URL.Path)
		require.Equal(t, "Bearer cf-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, audio, body)

		json.NewEncoder(w).Encode(map[string]any{
			"result":  map[string]any{"text": "hello world"},
			"success": true,
		})
	})

	resp, err := adapter.Transcribe(context.Background(), models.TranscriptionRequest{
		Model: "@cf/openai/whisper",
		Input: models.AudioInput{Reader: bytes.NewReader(audio)},
	})
	require.NoError(t, err)
	require.Equal(t, "hello world", resp.Text)
	require.Equal(t, "@cf/openai/whisper", resp.Model)
}

func TestTranscribeUnsuccessful(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result":  nil,
			"success": false,
			"errors":  []any{"model capacity exceeded"},
		})
	})

	_, err := adapter.Transcribe(context.Background(), models.TranscriptionRequest{
		Model: "@cf/openai/whisper",
		Input: models.AudioInput{Reader: bytes.NewReader([]byte("x"))},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "model capacity exceeded")
}

func TestTranscribeHTTPError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := adapter.Transcribe(context.Background(), models.TranscriptionRequest{
		Model: "@cf/openai/whisper",
		Input: models.AudioInput{Reader: bytes.NewReader([]byte("x"))},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestTranslator(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/acct-123/ai/run/@cf/meta/m2m100-1.2b", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "good morning", payload["text"])
		require.Equal(t, "es", payload["target_lang"])

		json.NewEncoder(w).Encode(map[string]any{
			"result":  map[string]any{"translated_text": "buenos días"},
			"success": true,
		})
	})

	translator, err := adapter.NewTranslator("ES")
	require.NoError(t, err)

	out, err := translator.Translate(context.Background(), "good morning")
	require.NoError(t, err)
	require.Equal(t, "buenos días", out)
}

func TestTranslatorRejectsEmptyText(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	translator, err := adapter.NewTranslator("es")
	require.NoError(t, err)
	_, err = translator.Translate(context.Background(), "   ")
	require.Error(t, err)
}

func TestTranslateSpeechComposes(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/acct-123/ai/run/@cf/openai/whisper":
			json.NewEncoder(w).Encode(map[string]any{
				"result":  map[string]any{"text": "bonjour le monde"},
				"success": true,
			})
		case "/accounts/acct-123/ai/run/@cf/meta/m2m100-1.2b":
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Equal(t, "bonjour le monde", payload["text"])
			require.Equal(t, "en", payload["target_lang"])
			json.NewEncoder(w).Encode(map[string]any{
				"result":  map[string]any{"translated_text": "hello world"},
				"success": true,
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	resp, err := adapter.TranslateSpeech(context.Background(), models.TranscriptionRequest{
		Model: "@cf/openai/whisper",
		Task:  models.TranscriptionTaskTranslate,
		Input: models.AudioInput{Reader: bytes.NewReader([]byte("x"))},
	})
	require.NoError(t, err)
	require.Equal(t, "hello world", resp.Text)
	require.Equal(t, "en", resp.Language)
}
