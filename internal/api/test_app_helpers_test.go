package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/labunify/internal/db"
	"github.com/terraincognita07/labunify/internal/i18n"
	"github.com/terraincognita07/labunify/internal/services"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "labunify-api-test.db")
	database, err := db.OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	cache, err := services.NewLRUGraphCache(16)
	if err != nil {
		t.Fatalf("init graph cache: %v", err)
	}

	handler, err := NewHandler(db.NewTermStore(database), cache, i18nManager, zap.NewNop(), 80)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	return NewApp(handler)
}

func sendJSON(t *testing.T, app *fiber.App, method string, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader = http.NoBody
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	return sendRaw(t, app, method, path, body, "en")
}

func sendRaw(t *testing.T, app *fiber.App, method string, path string, body io.Reader, language string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, body)
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if language != "" {
		request.Header.Set(fiber.HeaderAcceptLanguage, language)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, body)
	}
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

type hemoglobinSeed struct {
	canonical  canonicalNameView
	gramsLiter unitView
	gramsDeci  unitView
}

// seedHemoglobin creates Гемоглобін with synonyms Hb and Hemoglobin, units
// г/л (standard) and г/дл, and the edge г/л -> г/дл "x / 10" through the API.
func seedHemoglobin(t *testing.T, app *fiber.App) hemoglobinSeed {
	t.Helper()

	response := sendJSON(t, app, http.MethodPost, "/api/synonyms", synonymPayload{StandardName: "Гемоглобін", Synonym: "Hb"})
	expectStatus(t, response, fiber.StatusCreated)
	created := decodeJSON[struct {
		CanonicalName canonicalNameView `json:"canonical_name"`
		Synonym       synonymView       `json:"synonym"`
	}](t, response)

	seed := hemoglobinSeed{canonical: created.CanonicalName}
	expectStatus(t, sendJSON(t, app, http.MethodPost, "/api/synonyms", synonymPayload{StandardName: "Гемоглобін", Synonym: "Hemoglobin"}), fiber.StatusCreated)

	unitsPath := canonicalPath(seed.canonical.ID, "units")
	response = sendJSON(t, app, http.MethodPost, unitsPath, unitPayload{Name: "г/л", IsStandard: true})
	expectStatus(t, response, fiber.StatusCreated)
	seed.gramsLiter = decodeJSON[unitView](t, response)

	response = sendJSON(t, app, http.MethodPost, unitsPath, unitPayload{Name: "г/дл"})
	expectStatus(t, response, fiber.StatusCreated)
	seed.gramsDeci = decodeJSON[unitView](t, response)

	response = sendJSON(t, app, http.MethodPost, canonicalPath(seed.canonical.ID, "conversions"), conversionPayload{
		FromUnit: "г/л",
		ToUnit:   "г/дл",
		Formula:  "x / 10",
	})
	expectStatus(t, response, fiber.StatusCreated)
	return seed
}

func canonicalPath(id uint, collection string) string {
	return fmt.Sprintf("/api/canonical-names/%d/%s", id, collection)
}
