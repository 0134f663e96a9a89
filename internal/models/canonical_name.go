package models

type CanonicalName struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

type Synonym struct {
	ID              uint   `gorm:"primaryKey"`
	CanonicalNameID uint   `gorm:"not null;uniqueIndex:uidx_synonym_canonical_text"`
	Text            string `gorm:"not null;uniqueIndex:uidx_synonym_canonical_text"`
}

// TermKind tells whether a term text is a canonical name or a synonym.
type TermKind string

const (
	TermKindCanonical TermKind = "canonical"
	TermKindSynonym   TermKind = "synonym"
)

// TermText is one entry of the fuzzy matching pool.
type TermText struct {
	Text            string
	CanonicalNameID uint
	CanonicalName   string
	Kind            TermKind
}
