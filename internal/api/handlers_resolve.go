package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/labunify/internal/services"
)

// Resolve answers 200 for both outcomes; a miss carries status "not_found"
// and a localized message.
func (handler *Handler) Resolve(c *fiber.Ctx) error {
	payload := resolvePayload{}
	if ok, err := handler.parsePayload(c, &payload); !ok {
		return err
	}

	threshold := handler.defaultThreshold
	if payload.Threshold != nil {
		threshold = *payload.Threshold
	}

	result, err := handler.unification.Resolve(payload.Input, threshold)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(handler.newResolveResponse(c, result))
}

func (handler *Handler) newResolveResponse(c *fiber.Ctx, result services.ResolutionResult) resolveResponse {
	response := resolveResponse{
		Status: string(result.Status),
		Input:  result.Input,
		Tier:   string(result.Tier),
		Score:  result.Score,
	}
	if !result.Found() {
		response.Message = handler.i18n.Translatef(handler.currentLanguage(c), "resolve.not_found", result.Input)
		return response
	}

	canonical := newCanonicalNameView(result.Canonical)
	response.CanonicalName = &canonical
	response.Matched = result.Matched
	return response
}
