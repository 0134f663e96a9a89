package api

type resolvePayload struct {
	Input     string   `json:"input" validate:"required"`
	Threshold *float64 `json:"threshold" validate:"omitempty,gte=0,lte=100"`
}

type convertPayload struct {
	CanonicalID uint     `json:"canonical_id" validate:"required"`
	Value       *float64 `json:"value" validate:"required"`
	FromUnit    string   `json:"from_unit" validate:"required"`
	ToUnit      string   `json:"to_unit" validate:"required"`
}

type convertStandardPayload struct {
	CanonicalID uint     `json:"canonical_id" validate:"required"`
	Value       *float64 `json:"value" validate:"required"`
	FromUnit    string   `json:"from_unit" validate:"required"`
}

type synonymPayload struct {
	StandardName string `json:"standard_name" validate:"required,max=255"`
	Synonym      string `json:"synonym" validate:"required,max=255"`
}

type canonicalSynonymPayload struct {
	Synonym string `json:"synonym" validate:"required,max=255"`
}

type unitPayload struct {
	Name       string `json:"name" validate:"required,max=255"`
	IsStandard bool   `json:"is_standard"`
}

// conversionPayload names its units either by id or by name.
type conversionPayload struct {
	FromUnitID uint   `json:"from_unit_id" validate:"required_without=FromUnit"`
	ToUnitID   uint   `json:"to_unit_id" validate:"required_without=ToUnit"`
	FromUnit   string `json:"from_unit" validate:"required_without=FromUnitID"`
	ToUnit     string `json:"to_unit" validate:"required_without=ToUnitID"`
	Formula    string `json:"formula" validate:"required"`
}
