package models

type Unit struct {
	ID              uint   `gorm:"primaryKey"`
	CanonicalNameID uint   `gorm:"not null;uniqueIndex:uidx_unit_canonical_name"`
	Name            string `gorm:"not null;uniqueIndex:uidx_unit_canonical_name"`
	IsStandard      bool   `gorm:"not null;default:false"`
}

// UnitConversion is a directed edge: applying Formula to a value expressed in
// FromUnitID yields the value in ToUnitID.
type UnitConversion struct {
	ID              uint   `gorm:"primaryKey"`
	CanonicalNameID uint   `gorm:"not null;uniqueIndex:uidx_conversion_pair"`
	FromUnitID      uint   `gorm:"not null;uniqueIndex:uidx_conversion_pair"`
	ToUnitID        uint   `gorm:"not null;uniqueIndex:uidx_conversion_pair"`
	Formula         string `gorm:"not null"`
}
