package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	languageQueryParam = "lang"
	contextLanguageKey = "current_language"
)

// LanguageMiddleware picks the response language from ?lang= and then from
// Accept-Language, falling back to the configured default.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if requested := c.Query(languageQueryParam); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

// RequestLogger logs every request at info once the handler chain returns.
func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()
	handler.logger.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(started)),
	)
	return err
}
