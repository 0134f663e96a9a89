package api

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const synonymExportFilename = "labunify-synonyms.json"

func (handler *Handler) ImportSynonyms(c *fiber.Ctx) error {
	summary, err := handler.transfer.Import(bytes.NewReader(c.Body()), c.Query("standard_name"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportSynonyms(c *fiber.Ctx) error {
	var output bytes.Buffer
	if err := handler.transfer.Export(&output, c.Query("standard_name")); err != nil {
		return handler.serviceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", synonymExportFilename))
	return c.Send(output.Bytes())
}
