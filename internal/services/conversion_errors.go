package services

import (
	"errors"
	"fmt"
)

type ConversionErrorKind string

const (
	KindUnitNotFound      ConversionErrorKind = "unit_not_found"
	KindNoPathFound       ConversionErrorKind = "no_path_found"
	KindFormulaError      ConversionErrorKind = "formula_error"
	KindNoConversionFound ConversionErrorKind = "no_conversion_found"
)

// EdgeRef identifies the stored conversion a formula came from.
type EdgeRef struct {
	ConversionID uint
	FromUnitID   uint
	ToUnitID     uint
}

type ConversionError struct {
	Op       string
	Kind     ConversionErrorKind
	FromUnit string
	ToUnit   string
	Formula  string
	Edge     *EdgeRef
	Err      error
}

func (e *ConversionError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var message string
	switch e.Kind {
	case KindUnitNotFound:
		message = fmt.Sprintf("unit %q not found", e.missingUnit())
	case KindNoPathFound:
		message = fmt.Sprintf("no conversion path from %q to %q", e.FromUnit, e.ToUnit)
	case KindNoConversionFound:
		message = fmt.Sprintf("no conversion between %q and standard unit %q", e.FromUnit, e.ToUnit)
	case KindFormulaError:
		message = fmt.Sprintf("formula %q failed", e.Formula)
		if e.Edge != nil {
			message += fmt.Sprintf(" (conversion %d: unit %d -> unit %d)", e.Edge.ConversionID, e.Edge.FromUnitID, e.Edge.ToUnitID)
		}
	default:
		message = string(e.Kind)
	}

	base := fmt.Sprintf("%s: %s", e.Op, message)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ConversionError) missingUnit() string {
	if e.FromUnit != "" {
		return e.FromUnit
	}
	return e.ToUnit
}

// IsConversionKind reports whether err is a ConversionError of the given kind.
func IsConversionKind(err error, kind ConversionErrorKind) bool {
	var conversionErr *ConversionError
	if errors.As(err, &conversionErr) {
		return conversionErr.Kind == kind
	}
	return false
}

// ConversionKindOf returns the kind of err, or "" when err is not a ConversionError.
func ConversionKindOf(err error) ConversionErrorKind {
	var conversionErr *ConversionError
	if errors.As(err, &conversionErr) {
		return conversionErr.Kind
	}
	return ""
}

func unitNotFound(op string, unit string) *ConversionError {
	return &ConversionError{Op: op, Kind: KindUnitNotFound, FromUnit: unit}
}
