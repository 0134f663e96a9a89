package db

import (
	"github.com/terraincognita07/labunify/internal/models"
	"gorm.io/gorm"
)

type ConversionRepository struct {
	database *gorm.DB
}

func NewConversionRepository(database *gorm.DB) *ConversionRepository {
	return &ConversionRepository{database: database}
}

// ListByCanonical returns conversions in insertion order.
func (repo *ConversionRepository) ListByCanonical(canonicalID uint) ([]models.UnitConversion, error) {
	conversions := make([]models.UnitConversion, 0)
	if err := repo.database.Where("canonical_name_id = ?", canonicalID).Order("id ASC").Find(&conversions).Error; err != nil {
		return nil, err
	}
	return conversions, nil
}

func (repo *ConversionRepository) FindPair(canonicalID uint, fromUnitID uint, toUnitID uint) (models.UnitConversion, bool, error) {
	entry := models.UnitConversion{}
	result := repo.database.
		Where("canonical_name_id = ? AND from_unit_id = ? AND to_unit_id = ?", canonicalID, fromUnitID, toUnitID).
		Order("id ASC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.UnitConversion{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *ConversionRepository) FindByID(id uint) (models.UnitConversion, bool, error) {
	entry := models.UnitConversion{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.UnitConversion{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *ConversionRepository) Create(entry *models.UnitConversion) error {
	return repo.database.Create(entry).Error
}

func (repo *ConversionRepository) Delete(id uint) error {
	return repo.database.Where("id = ?", id).Delete(&models.UnitConversion{}).Error
}

// DeleteByUnit removes every conversion that starts or ends at unitID.
func (repo *ConversionRepository) DeleteByUnit(unitID uint) error {
	return repo.database.Where("from_unit_id = ? OR to_unit_id = ?", unitID, unitID).Delete(&models.UnitConversion{}).Error
}
