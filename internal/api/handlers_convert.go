package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Convert(c *fiber.Ctx) error {
	payload := convertPayload{}
	if ok, err := handler.parsePayload(c, &payload); !ok {
		return err
	}

	result, err := handler.conversions.Convert(*payload.Value, payload.FromUnit, payload.ToUnit, payload.CanonicalID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newConversionResponse(result))
}

func (handler *Handler) ConvertToStandard(c *fiber.Ctx) error {
	payload := convertStandardPayload{}
	if ok, err := handler.parsePayload(c, &payload); !ok {
		return err
	}

	result, err := handler.conversions.ConvertToStandard(*payload.Value, payload.FromUnit, payload.CanonicalID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newConversionResponse(result))
}
