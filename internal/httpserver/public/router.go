package public

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/voxgate/voxgate/internal/app"
	"github.com/voxgate/voxgate/internal/services/usage"
)

// Register wires up the speech API routes.
func Register(fiberApp *fiber.App, container *app.Container) {
	h := &handler{container: container}
	fiberApp.Post("/transcribe", h.transcribe)
	fiberApp.Post("/translate", h.translateAudio)
	fiberApp.Post("/synthesize", h.synthesize)
	fiberApp.Post("/translate_text", h.translateText)
	fiberApp.Get("/languages", h.languages)
}

type handler struct {
	container *app.Container
}

// record reports one upstream model call to metrics and the usage log.
func (h *handler) record(c *fiber.Ctx, route, provider, model string, status int, latency time.Duration, bytesIn int64, chars int, callErr error) {
	h.container.Observability.RecordInference(route, provider, model, status, latency)
	h.container.Observability.RecordCharacters(route, provider, chars)

	errCode := ""
	if callErr != nil {
		errCode = callErr.Error()
	}
	h.container.Usage.Record(c.UserContext(), usage.Record{
		RequestID: c.GetRespHeader(fiber.HeaderXRequestID),
		Route:     route,
		Provider:  provider,
		Model:     model,
		Status:    status,
		Latency:   latency,
		BytesIn:   bytesIn,
		Chars:     chars,
		ErrorCode: errCode,
		Timestamp: time.Now().UTC(),
		Success:   callErr == nil,
	})
}
