package public

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/voxgate/voxgate/internal/httpserver/httputil"
	"github.com/voxgate/voxgate/internal/models"
)

type synthesizeRequest struct {
	Text string `json:"text"`
}

func (h *handler) synthesize(c *fiber.Ctx) error {
	var text string
	var referencePath string

	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return httputil.WriteError(c, fiber.StatusBadRequest, "invalid multipart form")
		}
		text = c.FormValue("text")
		if refs := form.File["reference_audio"]; len(refs) > 0 {
			path, err := h.stageUpload(refs[0])
			if err != nil {
				return httputil.WriteError(c, fiber.StatusInternalServerError, "failed to stage reference audio")
			}
			defer os.Remove(path)
			referencePath = path
		}
	} else {
		var payload synthesizeRequest
		if err := c.BodyParser(&payload); err != nil {
			return httputil.WriteError(c, fiber.StatusBadRequest, "invalid request body")
		}
		text = payload.Text
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return httputil.WriteError(c, fiber.StatusBadRequest, "text is required")
	}

	cfg := h.container.Config
	req := models.SpeechRequest{
		Model:              cfg.Models.TTSModel,
		Input:              text,
		Voice:              cfg.Models.TTSVoice,
		Format:             cfg.Models.TTSFormat,
		ReferenceAudioPath: referencePath,
	}

	route := c.Path()
	provider := h.container.Providers.TTSProvider

	start := time.Now()
	resp, err := h.container.Providers.Synthesizer.Synthesize(c.UserContext(), req)
	elapsed := time.Since(start)

	if err != nil {
		h.record(c, route, provider, req.Model, fiber.StatusBadGateway, elapsed, 0, 0, err)
		return httputil.WriteError(c, fiber.StatusBadGateway, err.Error())
	}

	h.record(c, route, provider, req.Model, fiber.StatusOK, elapsed, 0, len(text), nil)
	c.Set(fiber.HeaderContentType, audioContentType(req.Format))
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(resp.Audio)))
	return c.Send(resp.Audio)
}

func audioContentType(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "mp3":
		return "audio/mpeg"
	case "aac":
		return "audio/aac"
	case "flac":
		return "audio/flac"
	case "opus":
		return "audio/opus"
	case "webm":
		return "audio/webm"
	case "wav":
		return "audio/wav"
	case "pcm":
		return "audio/L16"
	default:
		return "audio/mpeg"
	}
}
