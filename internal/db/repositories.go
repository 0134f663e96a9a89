package db

import "gorm.io/gorm"

type Repositories struct {
	CanonicalNames *CanonicalNameRepository
	Synonyms       *SynonymRepository
	Units          *UnitRepository
	Conversions    *ConversionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		CanonicalNames: NewCanonicalNameRepository(database),
		Synonyms:       NewSynonymRepository(database),
		Units:          NewUnitRepository(database),
		Conversions:    NewConversionRepository(database),
	}
}
