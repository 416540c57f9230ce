package public

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/voxgate/voxgate/internal/httpserver/httputil"
)

type translateTextRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

func (h *handler) translateText(c *fiber.Ctx) error {
	var payload translateTextRequest
	if err := c.BodyParser(&payload); err != nil {
		return httputil.WriteError(c, fiber.StatusBadRequest, "invalid request body")
	}
	text := strings.TrimSpace(payload.Text)
	if text == "" {
		return httputil.WriteError(c, fiber.StatusBadRequest, "text is required")
	}

	registry := h.container.Translators
	var targets []string
	if target := strings.ToLower(strings.TrimSpace(payload.TargetLang)); target != "" {
		if !registry.Supported(target) {
			return httputil.WriteError(c, fiber.StatusBadRequest, fmt.Sprintf("unsupported target_lang %q", target))
		}
		targets = []string{target}
	} else {
		targets = registry.Languages()
	}

	route := c.Path()
	provider := h.container.Providers.TranslatorProvider
	model := h.container.Config.Models.TranslatorModel

	translations := make(map[string]string, len(targets))
	for _, lang := range targets {
		translator, err := registry.Get(lang)
		if err != nil {
			h.record(c, route, provider, model, fiber.StatusBadGateway, 0, 0, 0, err)
			return httputil.WriteError(c, fiber.StatusBadGateway, err.Error())
		}

		start := time.Now()
		translated, err := translator.Translate(c.UserContext(), text)
		elapsed := time.Since(start)
		if err != nil {
			h.record(c, route, provider, model, fiber.StatusBadGateway, elapsed, 0, 0, err)
			return httputil.WriteError(c, fiber.StatusBadGateway, err.Error())
		}

		h.record(c, route, provider, model, fiber.StatusOK, elapsed, 0, len(translated), nil)
		translations[lang] = translated
	}

	return c.JSON(fiber.Map{
		"original_text": text,
		"translations":  translations,
	})
}

func (h *handler) languages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"languages": h.container.Translators.Languages()})
}
