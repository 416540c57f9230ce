package public

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/voxgate/voxgate/internal/httpserver/httputil"
	"github.com/voxgate/voxgate/internal/models"
)

func (h *handler) transcribe(c *fiber.Ctx) error {
	return h.handleSpeechToText(c, models.TranscriptionTaskTranscribe)
}

func (h *handler) translateAudio(c *fiber.Ctx) error {
	return h.handleSpeechToText(c, models.TranscriptionTaskTranslate)
}

func (h *handler) handleSpeechToText(c *fiber.Ctx, task models.TranscriptionTask) error {
	form, err := c.MultipartForm()
	if err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "multipart form required")
	}
	fileHeaders := form.File["file"]
	if len(fileHeaders) == 0 {
		return httputil.WriteError(c, fiber.StatusBadRequest, "file is required")
	}
	fh := fileHeaders[0]
	if strings.TrimSpace(fh.Filename) == "" {
		return httputil.WriteError(c, fiber.StatusBadRequest, "no selected file")
	}

	path, err := h.stageUpload(fh)
	if err != nil {
		return httputil.WriteError(c, fiber.StatusInternalServerError, "failed to stage upload")
	}
	defer os.Remove(path)

	audio, err := os.Open(path)
	if err != nil {
		return httputil.WriteError(c, fiber.StatusInternalServerError, "failed to read staged upload")
	}
	defer audio.Close()

	req := models.TranscriptionRequest{
		Model: h.container.Config.Models.STTModel,
		Task:  task,
		Input: models.AudioInput{
			Reader:      audio,
			Path:        path,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Bytes:       fh.Size,
		},
	}

	route := c.Path()
	provider := h.container.Providers.STTProvider

	var resp models.TranscriptionResponse
	start := time.Now()
	if task == models.TranscriptionTaskTranslate {
		resp, err = h.container.Providers.SpeechTranslate.TranslateSpeech(c.UserContext(), req)
	} else {
		resp, err = h.container.Providers.Transcriber.Transcribe(c.UserContext(), req)
	}
	elapsed := time.Since(start)

	if err != nil {
		h.record(c, route, provider, req.Model, fiber.StatusBadGateway, elapsed, fh.Size, 0, err)
		return httputil.WriteError(c, fiber.StatusBadGateway, err.Error())
	}

	h.record(c, route, provider, req.Model, fiber.StatusOK, elapsed, fh.Size, len(resp.Text), nil)
	return c.JSON(fiber.Map{"text": resp.Text})
}

// stageUpload copies the multipart upload to a uniquely named file in the
// spool directory. The caller removes it when the request finishes.
func (h *handler) stageUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	pattern := "voxgate-*"
	if ext := filepath.Ext(fh.Filename); ext != "" && !strings.ContainsAny(ext, "/\\") {
		pattern += ext
	}
	tmp, err := os.CreateTemp(h.container.Config.Audio.SpoolDir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp.Name(), nil
}
