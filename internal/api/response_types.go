package api

import (
	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/services"
)

type canonicalNameView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type synonymView struct {
	ID              uint   `json:"id"`
	CanonicalNameID uint   `json:"canonical_name_id"`
	Text            string `json:"text"`
}

type unitView struct {
	ID              uint   `json:"id"`
	CanonicalNameID uint   `json:"canonical_name_id"`
	Name            string `json:"name"`
	IsStandard      bool   `json:"is_standard"`
}

type conversionView struct {
	ID              uint   `json:"id"`
	CanonicalNameID uint   `json:"canonical_name_id"`
	FromUnitID      uint   `json:"from_unit_id"`
	ToUnitID        uint   `json:"to_unit_id"`
	Formula         string `json:"formula"`
}

type resolveResponse struct {
	Status        string             `json:"status"`
	Input         string             `json:"input"`
	Tier          string             `json:"tier"`
	CanonicalName *canonicalNameView `json:"canonical_name,omitempty"`
	Matched       string             `json:"matched,omitempty"`
	Score         float64            `json:"score"`
	Message       string             `json:"message,omitempty"`
}

type pathStepView struct {
	FromUnitID uint   `json:"from_unit_id"`
	ToUnitID   uint   `json:"to_unit_id"`
	Formula    string `json:"formula"`
}

type conversionResponse struct {
	Value           float64        `json:"value"`
	FromUnit        string         `json:"from_unit"`
	ToUnit          string         `json:"to_unit"`
	CanonicalNameID uint           `json:"canonical_name_id"`
	Method          string         `json:"method"`
	Path            []pathStepView `json:"path"`
}

func newCanonicalNameView(entry models.CanonicalName) canonicalNameView {
	return canonicalNameView{ID: entry.ID, Name: entry.Name}
}

func newSynonymView(entry models.Synonym) synonymView {
	return synonymView{ID: entry.ID, CanonicalNameID: entry.CanonicalNameID, Text: entry.Text}
}

func newUnitView(entry models.Unit) unitView {
	return unitView{ID: entry.ID, CanonicalNameID: entry.CanonicalNameID, Name: entry.Name, IsStandard: entry.IsStandard}
}

func newConversionView(entry models.UnitConversion) conversionView {
	return conversionView{
		ID:              entry.ID,
		CanonicalNameID: entry.CanonicalNameID,
		FromUnitID:      entry.FromUnitID,
		ToUnitID:        entry.ToUnitID,
		Formula:         entry.Formula,
	}
}

func newConversionResponse(result services.ConversionResult) conversionResponse {
	path := make([]pathStepView, 0, len(result.Path))
	for _, step := range result.Path {
		path = append(path, pathStepView{FromUnitID: step.FromUnitID, ToUnitID: step.ToUnitID, Formula: step.Formula})
	}
	return conversionResponse{
		Value:           result.Value,
		FromUnit:        result.FromUnit,
		ToUnit:          result.ToUnit,
		CanonicalNameID: result.CanonicalNameID,
		Method:          string(result.Method),
		Path:            path,
	}
}

func mapViews[T any, V any](entries []T, view func(T) V) []V {
	views := make([]V, 0, len(entries))
	for _, entry := range entries {
		views = append(views, view(entry))
	}
	return views
}
