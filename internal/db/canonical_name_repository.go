package db

import (
	"github.com/terraincognita07/labunify/internal/models"
	"gorm.io/gorm"
)

type CanonicalNameRepository struct {
	database *gorm.DB
}

func NewCanonicalNameRepository(database *gorm.DB) *CanonicalNameRepository {
	return &CanonicalNameRepository{database: database}
}

func (repo *CanonicalNameRepository) FindByName(name string) (models.CanonicalName, bool, error) {
	entry := models.CanonicalName{}
	result := repo.database.Where("name = ?", name).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.CanonicalName{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *CanonicalNameRepository) FindByID(id uint) (models.CanonicalName, bool, error) {
	entry := models.CanonicalName{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.CanonicalName{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *CanonicalNameRepository) List() ([]models.CanonicalName, error) {
	names := make([]models.CanonicalName, 0)
	if err := repo.database.Order("name ASC, id ASC").Find(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (repo *CanonicalNameRepository) Create(entry *models.CanonicalName) error {
	return repo.database.Create(entry).Error
}
