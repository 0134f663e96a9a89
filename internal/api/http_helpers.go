package api

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/labunify/internal/services"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) localizedError(c *fiber.Ctx, status int, key string, args ...any) error {
	language := handler.currentLanguage(c)
	if len(args) == 0 {
		return apiError(c, status, handler.i18n.Translate(language, key))
	}
	return apiError(c, status, handler.i18n.Translatef(language, key, args...))
}

// parsePayload decodes the JSON body into payload and runs struct validation.
// On failure the error response has already been written and ok is false.
func (handler *Handler) parsePayload(c *fiber.Ctx, payload any) (bool, error) {
	if err := c.BodyParser(payload); err != nil {
		return false, handler.localizedError(c, fiber.StatusBadRequest, "error.bad_request")
	}
	if err := handler.validate.Struct(payload); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return false, handler.localizedError(c, fiber.StatusBadRequest, "error.validation", fieldErrors[0].Field())
		}
		return false, handler.localizedError(c, fiber.StatusBadRequest, "error.bad_request")
	}
	return true, nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// serviceError writes the localized response for an error returned by the
// services. Anything unrecognized is logged and reported as 500.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	if status, key, ok := sentinelErrorResponse(err); ok {
		return handler.localizedError(c, status, key)
	}

	var conversionErr *services.ConversionError
	if errors.As(err, &conversionErr) {
		switch conversionErr.Kind {
		case services.KindUnitNotFound:
			missing := conversionErr.FromUnit
			if missing == "" {
				missing = conversionErr.ToUnit
			}
			return handler.localizedError(c, fiber.StatusNotFound, "error.conversion_unit_not_found", missing)
		case services.KindNoPathFound:
			return handler.localizedError(c, fiber.StatusUnprocessableEntity, "error.conversion_no_path", conversionErr.FromUnit, conversionErr.ToUnit)
		case services.KindFormulaError:
			return handler.localizedError(c, fiber.StatusUnprocessableEntity, "error.conversion_formula", conversionErr.Formula)
		case services.KindNoConversionFound:
			return handler.localizedError(c, fiber.StatusUnprocessableEntity, "error.conversion_not_available", conversionErr.FromUnit, conversionErr.ToUnit)
		}
	}

	handler.logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return handler.localizedError(c, fiber.StatusInternalServerError, "error.internal")
}

func sentinelErrorResponse(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrInvalidThreshold):
		return fiber.StatusBadRequest, "error.invalid_threshold", true
	case errors.Is(err, services.ErrInvalidCanonicalName):
		return fiber.StatusBadRequest, "error.invalid_canonical_name", true
	case errors.Is(err, services.ErrInvalidSynonym):
		return fiber.StatusBadRequest, "error.invalid_synonym", true
	case errors.Is(err, services.ErrInvalidUnitName):
		return fiber.StatusBadRequest, "error.invalid_unit_name", true
	case errors.Is(err, services.ErrInvalidFormula):
		return fiber.StatusBadRequest, "error.invalid_formula", true
	case errors.Is(err, services.ErrSelfConversion):
		return fiber.StatusBadRequest, "error.self_conversion", true
	case errors.Is(err, services.ErrUnitOwnerMismatch):
		return fiber.StatusBadRequest, "error.unit_owner_mismatch", true
	case errors.Is(err, services.ErrInvalidTransferEntry):
		return fiber.StatusBadRequest, "error.invalid_transfer_entry", true
	case errors.Is(err, services.ErrInvalidTransferPayload):
		return fiber.StatusBadRequest, "error.invalid_transfer_payload", true
	case errors.Is(err, services.ErrCanonicalNameNotFound):
		return fiber.StatusNotFound, "error.canonical_not_found", true
	case errors.Is(err, services.ErrSynonymNotFound):
		return fiber.StatusNotFound, "error.synonym_not_found", true
	case errors.Is(err, services.ErrUnitNotFound):
		return fiber.StatusNotFound, "error.unit_not_found", true
	case errors.Is(err, services.ErrConversionNotFound):
		return fiber.StatusNotFound, "error.conversion_not_found", true
	case errors.Is(err, services.ErrSynonymExists):
		return fiber.StatusConflict, "error.synonym_exists", true
	case errors.Is(err, services.ErrUnitExists):
		return fiber.StatusConflict, "error.unit_exists", true
	case errors.Is(err, services.ErrConversionExists):
		return fiber.StatusConflict, "error.conversion_exists", true
	default:
		return 0, "", false
	}
}
