package db

import (
	"github.com/terraincognita07/labunify/internal/models"
	"gorm.io/gorm"
)

type SynonymRepository struct {
	database *gorm.DB
}

func NewSynonymRepository(database *gorm.DB) *SynonymRepository {
	return &SynonymRepository{database: database}
}

type synonymWithCanonical struct {
	ID              uint   `gorm:"column:id"`
	CanonicalNameID uint   `gorm:"column:canonical_name_id"`
	Text            string `gorm:"column:text"`
	CanonicalName   string `gorm:"column:canonical_name"`
}

// FindExact returns the synonym with the given text. A text may belong to
// several canonical names; the one with the smallest name wins.
func (repo *SynonymRepository) FindExact(text string) (models.CanonicalName, models.Synonym, bool, error) {
	rows := make([]synonymWithCanonical, 0, 1)
	if err := repo.database.
		Table("synonyms").
		Select("synonyms.id, synonyms.canonical_name_id, synonyms.text, canonical_names.name AS canonical_name").
		Joins("JOIN canonical_names ON canonical_names.id = synonyms.canonical_name_id").
		Where("synonyms.text = ?", text).
		Order("canonical_names.name ASC, synonyms.id ASC").
		Limit(1).
		Scan(&rows).Error; err != nil {
		return models.CanonicalName{}, models.Synonym{}, false, err
	}
	if len(rows) == 0 {
		return models.CanonicalName{}, models.Synonym{}, false, nil
	}

	row := rows[0]
	return models.CanonicalName{ID: row.CanonicalNameID, Name: row.CanonicalName},
		models.Synonym{ID: row.ID, CanonicalNameID: row.CanonicalNameID, Text: row.Text},
		true, nil
}

func (repo *SynonymRepository) FindByCanonicalAndText(canonicalID uint, text string) (models.Synonym, bool, error) {
	entry := models.Synonym{}
	result := repo.database.Where("canonical_name_id = ? AND text = ?", canonicalID, text).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.Synonym{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *SynonymRepository) FindByID(id uint) (models.Synonym, bool, error) {
	entry := models.Synonym{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.Synonym{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *SynonymRepository) ListByCanonical(canonicalID uint) ([]models.Synonym, error) {
	synonyms := make([]models.Synonym, 0)
	if err := repo.database.Where("canonical_name_id = ?", canonicalID).Order("id ASC").Find(&synonyms).Error; err != nil {
		return nil, err
	}
	return synonyms, nil
}

// ListTermTexts returns every synonym followed by every canonical name.
func (repo *SynonymRepository) ListTermTexts() ([]models.TermText, error) {
	rows := make([]synonymWithCanonical, 0)
	if err := repo.database.
		Table("synonyms").
		Select("synonyms.id, synonyms.canonical_name_id, synonyms.text, canonical_names.name AS canonical_name").
		Joins("JOIN canonical_names ON canonical_names.id = synonyms.canonical_name_id").
		Order("synonyms.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	names := make([]models.CanonicalName, 0)
	if err := repo.database.Order("id ASC").Find(&names).Error; err != nil {
		return nil, err
	}

	texts := make([]models.TermText, 0, len(rows)+len(names))
	for _, row := range rows {
		texts = append(texts, models.TermText{
			Text:            row.Text,
			CanonicalNameID: row.CanonicalNameID,
			CanonicalName:   row.CanonicalName,
			Kind:            models.TermKindSynonym,
		})
	}
	for _, name := range names {
		texts = append(texts, models.TermText{
			Text:            name.Name,
			CanonicalNameID: name.ID,
			CanonicalName:   name.Name,
			Kind:            models.TermKindCanonical,
		})
	}
	return texts, nil
}

func (repo *SynonymRepository) Create(entry *models.Synonym) error {
	return repo.database.Create(entry).Error
}

func (repo *SynonymRepository) Delete(id uint) error {
	return repo.database.Where("id = ?", id).Delete(&models.Synonym{}).Error
}
