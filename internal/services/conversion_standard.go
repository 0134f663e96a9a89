package services

import (
	"errors"
	"math"

	"github.com/terraincognita07/labunify/internal/formula"
	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
)

const standardUnitLabel = "standard unit"

var errNotMultiplicative = errors.New("reverse conversion requires a formula of the form x * k")

// ConvertToStandard converts value from fromUnit to the standard unit of the
// canonical name using a single stored edge. A direct edge from -> standard
// is applied as is; otherwise an edge standard -> from is inverted, which is
// only accepted for multiplicative formulas.
func (service *ConversionService) ConvertToStandard(value float64, fromUnit string, canonicalID uint) (ConversionResult, error) {
	const op = "conversion.to_standard"

	var (
		result ConversionResult
		method ConversionMethod
	)
	err := service.readGraph(func(reader termstore.Reader) error {
		standard, found, err := reader.GetStandardUnit(canonicalID)
		if err != nil {
			return err
		}
		if !found {
			return unitNotFound(op, standardUnitLabel)
		}
		from, found, err := reader.FindUnitByName(canonicalID, fromUnit)
		if err != nil {
			return err
		}
		if !found {
			return unitNotFound(op, fromUnit)
		}

		result = ConversionResult{
			FromUnit:        from.Name,
			ToUnit:          standard.Name,
			CanonicalNameID: canonicalID,
			Path:            []PathStep{},
		}
		if from.ID == standard.ID {
			method = MethodIdentity
			result.Value = value
			result.Method = method
			return nil
		}

		graph, err := service.graphFor(reader, canonicalID)
		if err != nil {
			return err
		}

		if edge, ok := graph.Edge(from.ID, standard.ID); ok {
			method = MethodDirect
			converted, err := formula.Evaluate(edge.Formula, formula.Variable, value)
			if err != nil {
				return formulaFailure(op, from, standard, edge, err)
			}
			result.Value = converted
			result.Method = method
			result.Path = []PathStep{edge.step()}
			return nil
		}

		if edge, ok := graph.Edge(standard.ID, from.ID); ok {
			method = MethodReverse
			factor, err := multiplicativeFactor(edge.Formula)
			if err != nil {
				return formulaFailure(op, from, standard, edge, err)
			}
			result.Value = value / factor
			result.Method = method
			result.Path = []PathStep{edge.step()}
			return nil
		}

		return &ConversionError{Op: op, Kind: KindNoConversionFound, FromUnit: from.Name, ToUnit: standard.Name}
	})
	if method == "" {
		method = MethodDirect
	}
	service.observe(method, err)
	if err != nil {
		return ConversionResult{}, err
	}
	return result, nil
}

// multiplicativeFactor returns k for a formula equivalent to x * k.
func multiplicativeFactor(text string) (float64, error) {
	expression, err := formula.Parse(text)
	if err != nil {
		return 0, err
	}
	at := func(x float64) (float64, error) {
		return expression.Eval(formula.Bindings{formula.Variable: x})
	}

	zero, err := at(0)
	if err != nil {
		return 0, err
	}
	one, err := at(1)
	if err != nil {
		return 0, err
	}
	two, err := at(2)
	if err != nil {
		return 0, err
	}
	if !closeTo(zero, 0) || !closeTo(two, 2*one) {
		return 0, errNotMultiplicative
	}
	if one == 0 {
		return 0, formula.ErrDivisionByZero
	}
	return one, nil
}

func closeTo(a float64, b float64) bool {
	const tolerance = 1e-9
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func formulaFailure(op string, from models.Unit, standard models.Unit, edge Edge, err error) *ConversionError {
	return &ConversionError{
		Op:       op,
		Kind:     KindFormulaError,
		FromUnit: from.Name,
		ToUnit:   standard.Name,
		Formula:  edge.Formula,
		Edge:     edge.ref(),
		Err:      err,
	}
}
