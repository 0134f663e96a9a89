package db

import (
	"github.com/terraincognita07/labunify/internal/models"
	"gorm.io/gorm"
)

type UnitRepository struct {
	database *gorm.DB
}

func NewUnitRepository(database *gorm.DB) *UnitRepository {
	return &UnitRepository{database: database}
}

func (repo *UnitRepository) ListByCanonical(canonicalID uint) ([]models.Unit, error) {
	units := make([]models.Unit, 0)
	if err := repo.database.Where("canonical_name_id = ?", canonicalID).Order("id ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (repo *UnitRepository) FindByName(canonicalID uint, name string) (models.Unit, bool, error) {
	entry := models.Unit{}
	result := repo.database.Where("canonical_name_id = ? AND name = ?", canonicalID, name).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.Unit{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *UnitRepository) FindByID(id uint) (models.Unit, bool, error) {
	entry := models.Unit{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.Unit{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *UnitRepository) FindStandard(canonicalID uint) (models.Unit, bool, error) {
	entry := models.Unit{}
	result := repo.database.
		Where("canonical_name_id = ? AND is_standard = ?", canonicalID, true).
		Order("id ASC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.Unit{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *UnitRepository) Create(entry *models.Unit) error {
	return repo.database.Create(entry).Error
}

func (repo *UnitRepository) ClearStandard(canonicalID uint) error {
	return repo.database.Model(&models.Unit{}).
		Where("canonical_name_id = ? AND is_standard = ?", canonicalID, true).
		Update("is_standard", false).Error
}

func (repo *UnitRepository) Delete(id uint) error {
	return repo.database.Where("id = ?", id).Delete(&models.Unit{}).Error
}
