package api

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/labunify/internal/services"
)

func TestImportSynonymsThenExport(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	document := `[
		{"standard_name": "Гемоглобін", "synonym": "Hb"},
		{"standard_name": "Гемоглобін", "synonym": "Hb"},
		{"standard_name": "Глюкоза", "synonym": "GLU"}
	]`

	response := sendRaw(t, app, http.MethodPost, "/api/synonyms/import", strings.NewReader(document), "en")
	expectStatus(t, response, fiber.StatusOK)
	if summary := decodeJSON[services.ImportSummary](t, response); summary != (services.ImportSummary{Added: 2, Skipped: 1}) {
		t.Fatalf("unexpected import summary %#v", summary)
	}

	response = sendJSON(t, app, http.MethodGet, "/api/synonyms/export?standard_name=%D0%93%D0%BB%D1%8E%D0%BA%D0%BE%D0%B7%D0%B0", nil)
	expectStatus(t, response, fiber.StatusOK)
	if disposition := response.Header.Get(fiber.HeaderContentDisposition); disposition != "attachment; filename=labunify-synonyms.json" {
		t.Fatalf("unexpected content disposition %q", disposition)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "[\n    {\n        \"standard_name\": \"Глюкоза\",\n        \"synonym\": \"GLU\"\n    }\n]\n"
	if string(body) != want {
		t.Fatalf("unexpected export body:\n%s", body)
	}
}

func TestImportSynonymsRejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "not an array",
			body:    `{"standard_name": "Гемоглобін"}`,
			message: "Import file must be a JSON array of {standard_name, synonym} objects.",
		},
		{
			name:    "blank synonym",
			body:    `[{"standard_name": "Гемоглобін", "synonym": " "}]`,
			message: "Import file contains an entry with an empty name or synonym.",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			response := sendRaw(t, app, http.MethodPost, "/api/synonyms/import", strings.NewReader(testCase.body), "en")
			expectStatus(t, response, fiber.StatusBadRequest)
			if got := readAPIError(t, response.Body); got != testCase.message {
				t.Fatalf("expected %q, got %q", testCase.message, got)
			}
		})
	}

	response := sendJSON(t, app, http.MethodGet, "/api/synonyms/export", nil)
	expectStatus(t, response, fiber.StatusOK)
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(body) != "[]\n" {
		t.Fatalf("expected empty export after rejected imports, got %q", body)
	}
}
