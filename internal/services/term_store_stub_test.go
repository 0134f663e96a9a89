package services

import (
	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
)

// memoryTermStore is an in-memory termstore.Store. Records keep insertion
// order, which matches the id ordering of the sqlite store.
type memoryTermStore struct {
	canonicalNames []models.CanonicalName
	synonyms       []models.Synonym
	units          []models.Unit
	conversions    []models.UnitConversion
	nextID         uint

	readErr             error
	listConversionCalls int
	reads               int
	writes              int
}

func newMemoryTermStore() *memoryTermStore {
	return &memoryTermStore{}
}

func (store *memoryTermStore) Read(fn func(reader termstore.Reader) error) error {
	store.reads++
	if store.readErr != nil {
		return store.readErr
	}
	return fn(store)
}

func (store *memoryTermStore) Write(fn func(writer termstore.Writer) error) error {
	store.writes++
	return fn(store)
}

func (store *memoryTermStore) id() uint {
	store.nextID++
	return store.nextID
}

func (store *memoryTermStore) canonical(name string) models.CanonicalName {
	if entry, found, _ := store.FindCanonicalExact(name); found {
		return entry
	}
	entry := models.CanonicalName{Name: name}
	_ = store.CreateCanonicalName(&entry)
	return entry
}

func (store *memoryTermStore) synonym(canonical models.CanonicalName, text string) models.Synonym {
	entry := models.Synonym{CanonicalNameID: canonical.ID, Text: text}
	_ = store.CreateSynonym(&entry)
	return entry
}

func (store *memoryTermStore) unit(canonical models.CanonicalName, name string, isStandard bool) models.Unit {
	entry := models.Unit{CanonicalNameID: canonical.ID, Name: name, IsStandard: isStandard}
	_ = store.CreateUnit(&entry)
	return entry
}

func (store *memoryTermStore) conversion(canonical models.CanonicalName, from models.Unit, to models.Unit, formula string) models.UnitConversion {
	entry := models.UnitConversion{CanonicalNameID: canonical.ID, FromUnitID: from.ID, ToUnitID: to.ID, Formula: formula}
	_ = store.CreateConversion(&entry)
	return entry
}

func (store *memoryTermStore) FindSynonymExact(text string) (models.CanonicalName, models.Synonym, bool, error) {
	var (
		bestName    models.CanonicalName
		bestSynonym models.Synonym
		found       bool
	)
	for _, synonym := range store.synonyms {
		if synonym.Text != text {
			continue
		}
		owner, _, _ := store.FindCanonicalByID(synonym.CanonicalNameID)
		if !found || owner.Name < bestName.Name {
			bestName, bestSynonym, found = owner, synonym, true
		}
	}
	return bestName, bestSynonym, found, nil
}

func (store *memoryTermStore) FindCanonicalExact(name string) (models.CanonicalName, bool, error) {
	for _, entry := range store.canonicalNames {
		if entry.Name == name {
			return entry, true, nil
		}
	}
	return models.CanonicalName{}, false, nil
}

func (store *memoryTermStore) FindCanonicalByID(id uint) (models.CanonicalName, bool, error) {
	for _, entry := range store.canonicalNames {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.CanonicalName{}, false, nil
}

func (store *memoryTermStore) ListCanonicalNames() ([]models.CanonicalName, error) {
	return append([]models.CanonicalName(nil), store.canonicalNames...), nil
}

func (store *memoryTermStore) ListTermTexts() ([]models.TermText, error) {
	texts := make([]models.TermText, 0, len(store.synonyms)+len(store.canonicalNames))
	for _, synonym := range store.synonyms {
		owner, _, _ := store.FindCanonicalByID(synonym.CanonicalNameID)
		texts = append(texts, models.TermText{
			Text:            synonym.Text,
			CanonicalNameID: owner.ID,
			CanonicalName:   owner.Name,
			Kind:            models.TermKindSynonym,
		})
	}
	for _, entry := range store.canonicalNames {
		texts = append(texts, models.TermText{
			Text:            entry.Name,
			CanonicalNameID: entry.ID,
			CanonicalName:   entry.Name,
			Kind:            models.TermKindCanonical,
		})
	}
	return texts, nil
}

func (store *memoryTermStore) ListSynonyms(canonicalID uint) ([]models.Synonym, error) {
	synonyms := make([]models.Synonym, 0)
	for _, entry := range store.synonyms {
		if entry.CanonicalNameID == canonicalID {
			synonyms = append(synonyms, entry)
		}
	}
	return synonyms, nil
}

func (store *memoryTermStore) GetStandardUnit(canonicalID uint) (models.Unit, bool, error) {
	for _, entry := range store.units {
		if entry.CanonicalNameID == canonicalID && entry.IsStandard {
			return entry, true, nil
		}
	}
	return models.Unit{}, false, nil
}

func (store *memoryTermStore) ListUnits(canonicalID uint) ([]models.Unit, error) {
	units := make([]models.Unit, 0)
	for _, entry := range store.units {
		if entry.CanonicalNameID == canonicalID {
			units = append(units, entry)
		}
	}
	return units, nil
}

func (store *memoryTermStore) FindUnitByName(canonicalID uint, name string) (models.Unit, bool, error) {
	for _, entry := range store.units {
		if entry.CanonicalNameID == canonicalID && entry.Name == name {
			return entry, true, nil
		}
	}
	return models.Unit{}, false, nil
}

func (store *memoryTermStore) FindUnitByID(id uint) (models.Unit, bool, error) {
	for _, entry := range store.units {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.Unit{}, false, nil
}

func (store *memoryTermStore) ListConversions(canonicalID uint) ([]models.UnitConversion, error) {
	store.listConversionCalls++
	conversions := make([]models.UnitConversion, 0)
	for _, entry := range store.conversions {
		if entry.CanonicalNameID == canonicalID {
			conversions = append(conversions, entry)
		}
	}
	return conversions, nil
}

func (store *memoryTermStore) FindConversion(canonicalID uint, fromUnitID uint, toUnitID uint) (models.UnitConversion, bool, error) {
	for _, entry := range store.conversions {
		if entry.CanonicalNameID == canonicalID && entry.FromUnitID == fromUnitID && entry.ToUnitID == toUnitID {
			return entry, true, nil
		}
	}
	return models.UnitConversion{}, false, nil
}

func (store *memoryTermStore) FindConversionByID(id uint) (models.UnitConversion, bool, error) {
	for _, entry := range store.conversions {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.UnitConversion{}, false, nil
}

func (store *memoryTermStore) FindSynonymByID(id uint) (models.Synonym, bool, error) {
	for _, entry := range store.synonyms {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.Synonym{}, false, nil
}

func (store *memoryTermStore) FindSynonym(canonicalID uint, text string) (models.Synonym, bool, error) {
	for _, entry := range store.synonyms {
		if entry.CanonicalNameID == canonicalID && entry.Text == text {
			return entry, true, nil
		}
	}
	return models.Synonym{}, false, nil
}

func (store *memoryTermStore) CreateCanonicalName(entry *models.CanonicalName) error {
	entry.ID = store.id()
	store.canonicalNames = append(store.canonicalNames, *entry)
	return nil
}

func (store *memoryTermStore) CreateSynonym(entry *models.Synonym) error {
	entry.ID = store.id()
	store.synonyms = append(store.synonyms, *entry)
	return nil
}

func (store *memoryTermStore) DeleteSynonym(id uint) error {
	kept := store.synonyms[:0]
	for _, entry := range store.synonyms {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	store.synonyms = kept
	return nil
}

func (store *memoryTermStore) CreateUnit(entry *models.Unit) error {
	entry.ID = store.id()
	store.units = append(store.units, *entry)
	return nil
}

func (store *memoryTermStore) ClearStandardUnit(canonicalID uint) error {
	for index := range store.units {
		if store.units[index].CanonicalNameID == canonicalID {
			store.units[index].IsStandard = false
		}
	}
	return nil
}

func (store *memoryTermStore) DeleteUnit(id uint) error {
	keptConversions := store.conversions[:0]
	for _, entry := range store.conversions {
		if entry.FromUnitID != id && entry.ToUnitID != id {
			keptConversions = append(keptConversions, entry)
		}
	}
	store.conversions = keptConversions

	kept := store.units[:0]
	for _, entry := range store.units {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	store.units = kept
	return nil
}

func (store *memoryTermStore) CreateConversion(entry *models.UnitConversion) error {
	entry.ID = store.id()
	store.conversions = append(store.conversions, *entry)
	return nil
}

func (store *memoryTermStore) DeleteConversion(id uint) error {
	kept := store.conversions[:0]
	for _, entry := range store.conversions {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	store.conversions = kept
	return nil
}
