// Package termstore declares the storage contract of the term unification and
// unit conversion services. internal/db provides the sqlite implementation.
package termstore

import "github.com/terraincognita07/labunify/internal/models"

// Reader is the query surface available inside one snapshot.
type Reader interface {
	FindSynonymExact(text string) (models.CanonicalName, models.Synonym, bool, error)
	FindCanonicalExact(name string) (models.CanonicalName, bool, error)
	FindCanonicalByID(id uint) (models.CanonicalName, bool, error)
	ListCanonicalNames() ([]models.CanonicalName, error)
	ListTermTexts() ([]models.TermText, error)
	ListSynonyms(canonicalID uint) ([]models.Synonym, error)
	GetStandardUnit(canonicalID uint) (models.Unit, bool, error)
	ListUnits(canonicalID uint) ([]models.Unit, error)
	FindUnitByName(canonicalID uint, name string) (models.Unit, bool, error)
	FindUnitByID(id uint) (models.Unit, bool, error)
	ListConversions(canonicalID uint) ([]models.UnitConversion, error)
	FindConversion(canonicalID uint, fromUnitID uint, toUnitID uint) (models.UnitConversion, bool, error)
	FindConversionByID(id uint) (models.UnitConversion, bool, error)
	FindSynonymByID(id uint) (models.Synonym, bool, error)
	FindSynonym(canonicalID uint, text string) (models.Synonym, bool, error)
}

// Writer extends Reader with the mutations used by term administration.
type Writer interface {
	Reader
	CreateCanonicalName(entry *models.CanonicalName) error
	CreateSynonym(entry *models.Synonym) error
	DeleteSynonym(id uint) error
	CreateUnit(entry *models.Unit) error
	ClearStandardUnit(canonicalID uint) error
	DeleteUnit(id uint) error
	CreateConversion(entry *models.UnitConversion) error
	DeleteConversion(id uint) error
}

// Store hands out scoped snapshots. The handle passed to fn is valid only
// until fn returns; it is released on every exit path, errors included.
type Store interface {
	Read(fn func(reader Reader) error) error
	Write(fn func(writer Writer) error) error
}
