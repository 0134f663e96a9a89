package db

import (
	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
	"gorm.io/gorm"
)

// TermStore implements termstore.Store on top of gorm transactions, so every
// snapshot is released by commit or rollback when the callback returns.
type TermStore struct {
	database *gorm.DB
}

func NewTermStore(database *gorm.DB) *TermStore {
	return &TermStore{database: database}
}

func (store *TermStore) Read(fn func(reader termstore.Reader) error) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		return fn(&termSession{repos: NewRepositories(tx)})
	})
}

func (store *TermStore) Write(fn func(writer termstore.Writer) error) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		return fn(&termSession{repos: NewRepositories(tx)})
	})
}

type termSession struct {
	repos *Repositories
}

func (session *termSession) FindSynonymExact(text string) (models.CanonicalName, models.Synonym, bool, error) {
	return session.repos.Synonyms.FindExact(text)
}

func (session *termSession) FindCanonicalExact(name string) (models.CanonicalName, bool, error) {
	return session.repos.CanonicalNames.FindByName(name)
}

func (session *termSession) FindCanonicalByID(id uint) (models.CanonicalName, bool, error) {
	return session.repos.CanonicalNames.FindByID(id)
}

func (session *termSession) ListCanonicalNames() ([]models.CanonicalName, error) {
	return session.repos.CanonicalNames.List()
}

func (session *termSession) ListTermTexts() ([]models.TermText, error) {
	return session.repos.Synonyms.ListTermTexts()
}

func (session *termSession) ListSynonyms(canonicalID uint) ([]models.Synonym, error) {
	return session.repos.Synonyms.ListByCanonical(canonicalID)
}

func (session *termSession) FindSynonymByID(id uint) (models.Synonym, bool, error) {
	return session.repos.Synonyms.FindByID(id)
}

func (session *termSession) FindSynonym(canonicalID uint, text string) (models.Synonym, bool, error) {
	return session.repos.Synonyms.FindByCanonicalAndText(canonicalID, text)
}

func (session *termSession) GetStandardUnit(canonicalID uint) (models.Unit, bool, error) {
	return session.repos.Units.FindStandard(canonicalID)
}

func (session *termSession) ListUnits(canonicalID uint) ([]models.Unit, error) {
	return session.repos.Units.ListByCanonical(canonicalID)
}

func (session *termSession) FindUnitByName(canonicalID uint, name string) (models.Unit, bool, error) {
	return session.repos.Units.FindByName(canonicalID, name)
}

func (session *termSession) FindUnitByID(id uint) (models.Unit, bool, error) {
	return session.repos.Units.FindByID(id)
}

func (session *termSession) ListConversions(canonicalID uint) ([]models.UnitConversion, error) {
	return session.repos.Conversions.ListByCanonical(canonicalID)
}

func (session *termSession) FindConversion(canonicalID uint, fromUnitID uint, toUnitID uint) (models.UnitConversion, bool, error) {
	return session.repos.Conversions.FindPair(canonicalID, fromUnitID, toUnitID)
}

func (session *termSession) FindConversionByID(id uint) (models.UnitConversion, bool, error) {
	return session.repos.Conversions.FindByID(id)
}

func (session *termSession) CreateCanonicalName(entry *models.CanonicalName) error {
	return session.repos.CanonicalNames.Create(entry)
}

func (session *termSession) CreateSynonym(entry *models.Synonym) error {
	return session.repos.Synonyms.Create(entry)
}

func (session *termSession) DeleteSynonym(id uint) error {
	return session.repos.Synonyms.Delete(id)
}

func (session *termSession) CreateUnit(entry *models.Unit) error {
	return session.repos.Units.Create(entry)
}

func (session *termSession) ClearStandardUnit(canonicalID uint) error {
	return session.repos.Units.ClearStandard(canonicalID)
}

func (session *termSession) DeleteUnit(id uint) error {
	if err := session.repos.Conversions.DeleteByUnit(id); err != nil {
		return err
	}
	return session.repos.Units.Delete(id)
}

func (session *termSession) CreateConversion(entry *models.UnitConversion) error {
	return session.repos.Conversions.Create(entry)
}

func (session *termSession) DeleteConversion(id uint) error {
	return session.repos.Conversions.Delete(id)
}
