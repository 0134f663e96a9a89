package services

import (
	"fmt"

	"github.com/terraincognita07/labunify/internal/formula"
	"github.com/terraincognita07/labunify/internal/metrics"
	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
	"go.uber.org/zap"
)

type ConversionMethod string

const (
	MethodIdentity ConversionMethod = "identity"
	MethodDirect   ConversionMethod = "direct"
	MethodReverse  ConversionMethod = "reverse"
	MethodPath     ConversionMethod = "path"
)

type PathStep struct {
	FromUnitID uint
	ToUnitID   uint
	Formula    string
}

type ConversionResult struct {
	Value           float64
	FromUnit        string
	ToUnit          string
	CanonicalNameID uint
	Method          ConversionMethod
	Path            []PathStep
}

type ConversionService struct {
	store  termstore.Store
	cache  GraphCache
	logger *zap.Logger
}

// NewConversionService wires the path engine. A nil cache rebuilds the graph
// on every call; a nil logger discards output.
func NewConversionService(store termstore.Store, cache GraphCache, logger *zap.Logger) *ConversionService {
	if cache == nil {
		cache = noGraphCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversionService{store: store, cache: cache, logger: logger}
}

// Convert transforms value from fromUnit to toUnit of the canonical name by
// the path with the fewest hops. Formulas are applied as edges are
// traversed; the first formula failure ends the search.
func (service *ConversionService) Convert(value float64, fromUnit string, toUnit string, canonicalID uint) (ConversionResult, error) {
	const op = "conversion.convert"

	var result ConversionResult
	err := service.readGraph(func(reader termstore.Reader) error {
		from, found, err := reader.FindUnitByName(canonicalID, fromUnit)
		if err != nil {
			return err
		}
		if !found {
			return unitNotFound(op, fromUnit)
		}
		to, found, err := reader.FindUnitByName(canonicalID, toUnit)
		if err != nil {
			return err
		}
		if !found {
			return unitNotFound(op, toUnit)
		}

		units, err := reader.ListUnits(canonicalID)
		if err != nil {
			return err
		}
		graph, err := service.graphFor(reader, canonicalID)
		if err != nil {
			return err
		}

		converted, path, err := searchPath(op, graph, unitSet(units), value, from, to)
		if err != nil {
			return err
		}
		result = ConversionResult{
			Value:           converted,
			FromUnit:        from.Name,
			ToUnit:          to.Name,
			CanonicalNameID: canonicalID,
			Method:          MethodPath,
			Path:            path,
		}
		return nil
	})
	service.observe(MethodPath, err)
	if err != nil {
		return ConversionResult{}, err
	}
	return result, nil
}

// readGraph runs read in a store read that no graph-changing write overlaps.
func (service *ConversionService) readGraph(read func(reader termstore.Reader) error) error {
	return service.cache.Shared(func() error {
		return service.store.Read(read)
	})
}

func (service *ConversionService) graphFor(reader termstore.Reader, canonicalID uint) (Graph, error) {
	if graph, ok := service.cache.Get(canonicalID); ok {
		metrics.ObserveGraphCache(true)
		return graph, nil
	}
	metrics.ObserveGraphCache(false)

	generation := service.cache.Generation(canonicalID)
	conversions, err := reader.ListConversions(canonicalID)
	if err != nil {
		return nil, err
	}
	graph := BuildGraph(conversions)
	service.cache.Store(canonicalID, generation, graph)
	return graph, nil
}

func (service *ConversionService) observe(method ConversionMethod, err error) {
	if err == nil {
		metrics.ObserveConversion(string(method), "ok")
		return
	}
	kind := ConversionKindOf(err)
	if kind == "" {
		metrics.ObserveConversion(string(method), "store_error")
		return
	}
	metrics.ObserveConversion(string(method), string(kind))
	if kind == KindFormulaError {
		service.logger.Warn("conversion formula failed", zap.String("method", string(method)), zap.Error(err))
	}
}

type searchState struct {
	unitID uint
	value  float64
	path   []PathStep
}

// searchPath runs a breadth-first search from -> to. A unit is marked visited
// when dequeued; the goal test also happens on dequeue, so from == to yields
// the input value and an empty path.
func searchPath(op string, graph Graph, known map[uint]models.Unit, value float64, from models.Unit, to models.Unit) (float64, []PathStep, error) {
	queue := []searchState{{unitID: from.ID, value: value, path: []PathStep{}}}
	visited := make(map[uint]struct{}, len(known))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.unitID == to.ID {
			return current.value, current.path, nil
		}
		if _, seen := visited[current.unitID]; seen {
			continue
		}
		visited[current.unitID] = struct{}{}

		for _, edge := range graph[current.unitID] {
			if _, ok := known[edge.To]; !ok {
				return 0, nil, &ConversionError{
					Op:      op,
					Kind:    KindUnitNotFound,
					ToUnit:  fmt.Sprintf("#%d", edge.To),
					Formula: edge.Formula,
					Edge:    edge.ref(),
				}
			}

			next, err := formula.Evaluate(edge.Formula, formula.Variable, current.value)
			if err != nil {
				return 0, nil, &ConversionError{
					Op:       op,
					Kind:     KindFormulaError,
					FromUnit: unitLabel(known, edge.From),
					ToUnit:   unitLabel(known, edge.To),
					Formula:  edge.Formula,
					Edge:     edge.ref(),
					Err:      err,
				}
			}

			path := make([]PathStep, len(current.path), len(current.path)+1)
			copy(path, current.path)
			path = append(path, edge.step())
			queue = append(queue, searchState{unitID: edge.To, value: next, path: path})
		}
	}

	return 0, nil, &ConversionError{Op: op, Kind: KindNoPathFound, FromUnit: from.Name, ToUnit: to.Name}
}

func unitSet(units []models.Unit) map[uint]models.Unit {
	set := make(map[uint]models.Unit, len(units))
	for _, unit := range units {
		set[unit.ID] = unit
	}
	return set
}

func unitLabel(known map[uint]models.Unit, id uint) string {
	if unit, ok := known[id]; ok {
		return unit.Name
	}
	return ""
}
