package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/labunify/internal/formula"
	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
)

var (
	ErrInvalidCanonicalName  = errors.New("invalid canonical name")
	ErrInvalidSynonym        = errors.New("invalid synonym")
	ErrInvalidUnitName       = errors.New("invalid unit name")
	ErrInvalidFormula        = errors.New("invalid conversion formula")
	ErrCanonicalNameNotFound = errors.New("canonical name not found")
	ErrSynonymNotFound       = errors.New("synonym not found")
	ErrUnitNotFound          = errors.New("unit not found")
	ErrConversionNotFound    = errors.New("conversion not found")
	ErrSynonymExists         = errors.New("synonym already exists")
	ErrUnitExists            = errors.New("unit already exists")
	ErrConversionExists      = errors.New("conversion already exists")
	ErrUnitOwnerMismatch     = errors.New("unit belongs to another canonical name")
	ErrSelfConversion        = errors.New("conversion must connect two different units")
	ErrTermStoreFailed       = errors.New("term store operation failed")
)

const maxTermLength = 255

// TermAdminService owns every write to the term store. Unit and conversion
// writes invalidate the cached graph of the affected canonical name before
// any conversion can read the committed data.
type TermAdminService struct {
	store termstore.Store
	cache GraphCache
}

func NewTermAdminService(store termstore.Store, cache GraphCache) *TermAdminService {
	if cache == nil {
		cache = noGraphCache{}
	}
	return &TermAdminService{store: store, cache: cache}
}

// AddSynonym stores synonym under standardName, creating the canonical name
// when it does not exist yet.
func (service *TermAdminService) AddSynonym(standardName string, synonym string) (models.CanonicalName, models.Synonym, error) {
	standardName, err := normalizeTerm(standardName, ErrInvalidCanonicalName)
	if err != nil {
		return models.CanonicalName{}, models.Synonym{}, err
	}
	synonym, err = normalizeTerm(synonym, ErrInvalidSynonym)
	if err != nil {
		return models.CanonicalName{}, models.Synonym{}, err
	}

	var (
		canonical models.CanonicalName
		entry     models.Synonym
	)
	err = service.store.Write(func(writer termstore.Writer) error {
		var err error
		canonical, err = ensureCanonicalName(writer, standardName)
		if err != nil {
			return err
		}
		entry, err = createSynonym(writer, canonical.ID, synonym)
		return err
	})
	if err != nil {
		return models.CanonicalName{}, models.Synonym{}, err
	}
	return canonical, entry, nil
}

// AddSynonymTo stores synonym under an existing canonical name.
func (service *TermAdminService) AddSynonymTo(canonicalID uint, synonym string) (models.Synonym, error) {
	synonym, err := normalizeTerm(synonym, ErrInvalidSynonym)
	if err != nil {
		return models.Synonym{}, err
	}

	var entry models.Synonym
	err = service.store.Write(func(writer termstore.Writer) error {
		if _, err := requireCanonicalName(writer, canonicalID); err != nil {
			return err
		}
		var err error
		entry, err = createSynonym(writer, canonicalID, synonym)
		return err
	})
	if err != nil {
		return models.Synonym{}, err
	}
	return entry, nil
}

func (service *TermAdminService) DeleteSynonym(id uint) error {
	return service.store.Write(func(writer termstore.Writer) error {
		_, found, err := writer.FindSynonymByID(id)
		if err != nil {
			return storeFailure(err)
		}
		if !found {
			return ErrSynonymNotFound
		}
		return storeFailure(writer.DeleteSynonym(id))
	})
}

// AddUnit stores a unit of the canonical name. Marking it standard clears the
// flag on the previous standard unit in the same transaction.
func (service *TermAdminService) AddUnit(canonicalID uint, name string, isStandard bool) (models.Unit, error) {
	name, err := normalizeTerm(name, ErrInvalidUnitName)
	if err != nil {
		return models.Unit{}, err
	}

	var entry models.Unit
	err = service.writeGraph(func(writer termstore.Writer) (uint, error) {
		if _, err := requireCanonicalName(writer, canonicalID); err != nil {
			return 0, err
		}
		_, exists, err := writer.FindUnitByName(canonicalID, name)
		if err != nil {
			return 0, storeFailure(err)
		}
		if exists {
			return 0, ErrUnitExists
		}
		if isStandard {
			if err := writer.ClearStandardUnit(canonicalID); err != nil {
				return canonicalID, storeFailure(err)
			}
		}

		entry = models.Unit{CanonicalNameID: canonicalID, Name: name, IsStandard: isStandard}
		return canonicalID, storeFailure(writer.CreateUnit(&entry))
	})
	if err != nil {
		return models.Unit{}, err
	}
	return entry, nil
}

// DeleteUnit removes the unit together with every conversion touching it.
func (service *TermAdminService) DeleteUnit(id uint) error {
	return service.writeGraph(func(writer termstore.Writer) (uint, error) {
		unit, found, err := writer.FindUnitByID(id)
		if err != nil {
			return 0, storeFailure(err)
		}
		if !found {
			return 0, ErrUnitNotFound
		}
		return unit.CanonicalNameID, storeFailure(writer.DeleteUnit(id))
	})
}

// AddConversion stores a directed conversion between two units of the same
// canonical name. The formula must parse and may only refer to x.
func (service *TermAdminService) AddConversion(canonicalID uint, fromUnitID uint, toUnitID uint, text string) (models.UnitConversion, error) {
	text, err := validateFormula(text)
	if err != nil {
		return models.UnitConversion{}, err
	}

	var entry models.UnitConversion
	err = service.writeGraph(func(writer termstore.Writer) (uint, error) {
		if _, err := requireCanonicalName(writer, canonicalID); err != nil {
			return 0, err
		}
		from, err := requireOwnedUnit(writer, canonicalID, fromUnitID)
		if err != nil {
			return 0, err
		}
		to, err := requireOwnedUnit(writer, canonicalID, toUnitID)
		if err != nil {
			return 0, err
		}
		entry, err = createConversion(writer, canonicalID, from, to, text)
		return canonicalID, err
	})
	if err != nil {
		return models.UnitConversion{}, err
	}
	return entry, nil
}

// AddConversionByNames is AddConversion with the units given by name.
func (service *TermAdminService) AddConversionByNames(canonicalID uint, fromUnit string, toUnit string, text string) (models.UnitConversion, error) {
	text, err := validateFormula(text)
	if err != nil {
		return models.UnitConversion{}, err
	}

	var entry models.UnitConversion
	err = service.writeGraph(func(writer termstore.Writer) (uint, error) {
		if _, err := requireCanonicalName(writer, canonicalID); err != nil {
			return 0, err
		}
		from, err := requireUnitNamed(writer, canonicalID, fromUnit)
		if err != nil {
			return 0, err
		}
		to, err := requireUnitNamed(writer, canonicalID, toUnit)
		if err != nil {
			return 0, err
		}
		entry, err = createConversion(writer, canonicalID, from, to, text)
		return canonicalID, err
	})
	if err != nil {
		return models.UnitConversion{}, err
	}
	return entry, nil
}

func (service *TermAdminService) DeleteConversion(id uint) error {
	return service.writeGraph(func(writer termstore.Writer) (uint, error) {
		conversion, found, err := writer.FindConversionByID(id)
		if err != nil {
			return 0, storeFailure(err)
		}
		if !found {
			return 0, ErrConversionNotFound
		}
		return conversion.CanonicalNameID, storeFailure(writer.DeleteConversion(id))
	})
}

// writeGraph runs write with conversions held off. write reports the
// canonical name whose graph it touched; that graph is dropped from the cache
// before conversions resume.
func (service *TermAdminService) writeGraph(write func(writer termstore.Writer) (uint, error)) error {
	return service.cache.Exclusive(func() error {
		var canonicalID uint
		err := service.store.Write(func(writer termstore.Writer) error {
			var err error
			canonicalID, err = write(writer)
			return err
		})
		if canonicalID != 0 {
			service.cache.Invalidate(canonicalID)
		}
		return err
	})
}

// ListCanonicalNames returns canonical names whose name starts with prefix,
// compared case-insensitively. An empty prefix returns all of them.
func (service *TermAdminService) ListCanonicalNames(prefix string) ([]models.CanonicalName, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var names []models.CanonicalName
	err := service.store.Read(func(reader termstore.Reader) error {
		all, err := reader.ListCanonicalNames()
		if err != nil {
			return storeFailure(err)
		}
		names = make([]models.CanonicalName, 0, len(all))
		for _, name := range all {
			if prefix == "" || strings.HasPrefix(strings.ToLower(name.Name), prefix) {
				names = append(names, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (service *TermAdminService) GetCanonicalName(id uint) (models.CanonicalName, error) {
	var canonical models.CanonicalName
	err := service.store.Read(func(reader termstore.Reader) error {
		var err error
		canonical, err = requireCanonicalName(reader, id)
		return err
	})
	if err != nil {
		return models.CanonicalName{}, err
	}
	return canonical, nil
}

func (service *TermAdminService) ListSynonyms(canonicalID uint) ([]models.Synonym, error) {
	var synonyms []models.Synonym
	err := service.store.Read(func(reader termstore.Reader) error {
		if _, err := requireCanonicalName(reader, canonicalID); err != nil {
			return err
		}
		var err error
		synonyms, err = reader.ListSynonyms(canonicalID)
		return storeFailure(err)
	})
	if err != nil {
		return nil, err
	}
	return synonyms, nil
}

func (service *TermAdminService) ListUnits(canonicalID uint) ([]models.Unit, error) {
	var units []models.Unit
	err := service.store.Read(func(reader termstore.Reader) error {
		if _, err := requireCanonicalName(reader, canonicalID); err != nil {
			return err
		}
		var err error
		units, err = reader.ListUnits(canonicalID)
		return storeFailure(err)
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

func (service *TermAdminService) ListConversions(canonicalID uint) ([]models.UnitConversion, error) {
	var conversions []models.UnitConversion
	err := service.store.Read(func(reader termstore.Reader) error {
		if _, err := requireCanonicalName(reader, canonicalID); err != nil {
			return err
		}
		var err error
		conversions, err = reader.ListConversions(canonicalID)
		return storeFailure(err)
	})
	if err != nil {
		return nil, err
	}
	return conversions, nil
}

func normalizeTerm(value string, invalid error) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || utf8.RuneCountInString(value) > maxTermLength {
		return "", invalid
	}
	return value, nil
}

func validateFormula(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalidFormula
	}
	if err := formula.Validate(text, formula.Variable); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormula, err)
	}
	return text, nil
}

func storeFailure(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrTermStoreFailed, err)
}

func ensureCanonicalName(writer termstore.Writer, name string) (models.CanonicalName, error) {
	canonical, found, err := writer.FindCanonicalExact(name)
	if err != nil {
		return models.CanonicalName{}, storeFailure(err)
	}
	if found {
		return canonical, nil
	}
	canonical = models.CanonicalName{Name: name}
	if err := writer.CreateCanonicalName(&canonical); err != nil {
		return models.CanonicalName{}, storeFailure(err)
	}
	return canonical, nil
}

func requireCanonicalName(reader termstore.Reader, id uint) (models.CanonicalName, error) {
	canonical, found, err := reader.FindCanonicalByID(id)
	if err != nil {
		return models.CanonicalName{}, storeFailure(err)
	}
	if !found {
		return models.CanonicalName{}, ErrCanonicalNameNotFound
	}
	return canonical, nil
}

func requireOwnedUnit(reader termstore.Reader, canonicalID uint, unitID uint) (models.Unit, error) {
	unit, found, err := reader.FindUnitByID(unitID)
	if err != nil {
		return models.Unit{}, storeFailure(err)
	}
	if !found {
		return models.Unit{}, ErrUnitNotFound
	}
	if unit.CanonicalNameID != canonicalID {
		return models.Unit{}, ErrUnitOwnerMismatch
	}
	return unit, nil
}

func requireUnitNamed(reader termstore.Reader, canonicalID uint, name string) (models.Unit, error) {
	unit, found, err := reader.FindUnitByName(canonicalID, strings.TrimSpace(name))
	if err != nil {
		return models.Unit{}, storeFailure(err)
	}
	if !found {
		return models.Unit{}, fmt.Errorf("%w: %q", ErrUnitNotFound, name)
	}
	return unit, nil
}

func createSynonym(writer termstore.Writer, canonicalID uint, text string) (models.Synonym, error) {
	_, exists, err := writer.FindSynonym(canonicalID, text)
	if err != nil {
		return models.Synonym{}, storeFailure(err)
	}
	if exists {
		return models.Synonym{}, ErrSynonymExists
	}
	entry := models.Synonym{CanonicalNameID: canonicalID, Text: text}
	if err := writer.CreateSynonym(&entry); err != nil {
		return models.Synonym{}, storeFailure(err)
	}
	return entry, nil
}

func createConversion(writer termstore.Writer, canonicalID uint, from models.Unit, to models.Unit, text string) (models.UnitConversion, error) {
	if from.ID == to.ID {
		return models.UnitConversion{}, ErrSelfConversion
	}
	_, exists, err := writer.FindConversion(canonicalID, from.ID, to.ID)
	if err != nil {
		return models.UnitConversion{}, storeFailure(err)
	}
	if exists {
		return models.UnitConversion{}, ErrConversionExists
	}
	entry := models.UnitConversion{
		CanonicalNameID: canonicalID,
		FromUnitID:      from.ID,
		ToUnitID:        to.ID,
		Formula:         text,
	}
	if err := writer.CreateConversion(&entry); err != nil {
		return models.UnitConversion{}, storeFailure(err)
	}
	return entry, nil
}
