package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/labunify/internal/models"
)

func (handler *Handler) ListCanonicalNames(c *fiber.Ctx) error {
	names, err := handler.admin.ListCanonicalNames(c.Query("prefix"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(mapViews(names, newCanonicalNameView))
}

func (handler *Handler) GetCanonicalName(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}

	canonical, err := handler.admin.GetCanonicalName(id)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newCanonicalNameView(canonical))
}

func (handler *Handler) ListSynonyms(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}

	synonyms, err := handler.admin.ListSynonyms(id)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(mapViews(synonyms, newSynonymView))
}

// CreateSynonym adds a synonym by standard name, creating the canonical name
// on first use.
func (handler *Handler) CreateSynonym(c *fiber.Ctx) error {
	payload := synonymPayload{}
	if ok, err := handler.parsePayload(c, &payload); !ok {
		return err
	}

	canonical, synonym, err := handler.admin.AddSynonym(payload.StandardName, payload.Synonym)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"canonical_name": newCanonicalNameView(canonical),
		"synonym":        newSynonymView(synonym),
	})
}

func (handler *Handler) CreateCanonicalSynonym(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}
	payload := canonicalSynonymPayload{}
	if ok, err := handler.parsePayload(c, &payload); !ok {
		return err
	}

	synonym, err := handler.admin.AddSynonymTo(id, payload.Synonym)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newSynonymView(synonym))
}

func (handler *Handler) DeleteSynonym(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}
	if err := handler.admin.DeleteSynonym(id); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListUnits(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}

	units, err := handler.admin.ListUnits(id)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(mapViews(units, newUnitView))
}

func (handler *Handler) CreateUnit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}
	payload := unitPayload{}
	if ok, err := handler.parsePayload(c, &payload); !ok {
		return err
	}

	unit, err := handler.admin.AddUnit(id, payload.Name, payload.IsStandard)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newUnitView(unit))
}

func (handler *Handler) DeleteUnit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}
	if err := handler.admin.DeleteUnit(id); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListConversions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}

	conversions, err := handler.admin.ListConversions(id)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(mapViews(conversions, newConversionView))
}

func (handler *Handler) CreateConversion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}
	payload := conversionPayload{}
	if ok, err := handler.parsePayload(c, &payload); !ok {
		return err
	}

	var conversion models.UnitConversion
	switch {
	case payload.FromUnitID != 0 && payload.ToUnitID != 0:
		conversion, err = handler.admin.AddConversion(id, payload.FromUnitID, payload.ToUnitID, payload.Formula)
	case payload.FromUnit != "" && payload.ToUnit != "":
		conversion, err = handler.admin.AddConversionByNames(id, payload.FromUnit, payload.ToUnit, payload.Formula)
	default:
		return handler.localizedError(c, fiber.StatusBadRequest, "error.validation", "from_unit")
	}
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newConversionView(conversion))
}

func (handler *Handler) DeleteConversion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_id")
	}
	if err := handler.admin.DeleteConversion(id); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
