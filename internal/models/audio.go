package models

import "io"

// AudioInput wraps audio staged on disk for a single request. Reader is an
// open handle on the temp file; Path points at the same file for backends
// that want to re-open it.
type AudioInput struct {
	Reader      io.Reader
	Path        string
	Filename    string
	ContentType string
	Bytes       int64
}

type TranscriptionTask string

const (
	TranscriptionTaskTranscribe TranscriptionTask = "transcribe"
	TranscriptionTaskTranslate  TranscriptionTask = "translate"
)

// TranscriptionRequest captures speech-to-text parameters. Task selects
// plain transcription or translation to English.
type TranscriptionRequest struct {
	Model       string
	Task        TranscriptionTask
	Input       AudioInput
	Prompt      string
	Language    string
	Temperature *float32
}

// TranscriptionResponse is a normalized speech-to-text result.
type TranscriptionResponse struct {
	Text     string
	Model    string
	Language string
}

// SpeechRequest drives text-to-speech generation. ReferenceAudioPath is
// accepted for API compatibility; current backends do not use it.
type SpeechRequest struct {
	Model              string
	Input              string
	Voice              string
	Format             string
	ReferenceAudioPath string
}

// SpeechResponse returns synthesized audio bytes.
type SpeechResponse struct {
	Audio []byte
}
