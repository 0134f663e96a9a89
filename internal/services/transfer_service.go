package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
)

var (
	ErrInvalidTransferPayload = errors.New("invalid synonym transfer payload")
	ErrInvalidTransferEntry   = errors.New("invalid synonym transfer entry")
)

// SynonymRecord is one element of the synonym transfer document.
type SynonymRecord struct {
	StandardName string `json:"standard_name"`
	Synonym      string `json:"synonym"`
}

type ImportSummary struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

type TransferService struct {
	store termstore.Store
}

func NewTransferService(store termstore.Store) *TransferService {
	return &TransferService{store: store}
}

// Import reads a JSON array of synonym records and stores the ones that are
// not present yet under their canonical name. When standardName is not empty
// only records of that canonical name are considered. The whole document is
// applied in one transaction.
func (service *TransferService) Import(source io.Reader, standardName string) (ImportSummary, error) {
	records := make([]SynonymRecord, 0)
	if err := json.NewDecoder(source).Decode(&records); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrInvalidTransferPayload, err)
	}
	standardName = strings.TrimSpace(standardName)

	normalized := make([]SynonymRecord, 0, len(records))
	for index, record := range records {
		name, err := normalizeTerm(record.StandardName, ErrInvalidCanonicalName)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidTransferEntry, index, err)
		}
		synonym, err := normalizeTerm(record.Synonym, ErrInvalidSynonym)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidTransferEntry, index, err)
		}
		normalized = append(normalized, SynonymRecord{StandardName: name, Synonym: synonym})
	}

	summary := ImportSummary{}
	err := service.store.Write(func(writer termstore.Writer) error {
		summary = ImportSummary{}
		canonicalIDs := make(map[string]uint)
		for _, record := range normalized {
			if standardName != "" && record.StandardName != standardName {
				summary.Skipped++
				continue
			}

			canonicalID, ok := canonicalIDs[record.StandardName]
			if !ok {
				canonical, err := ensureCanonicalName(writer, record.StandardName)
				if err != nil {
					return err
				}
				canonicalID = canonical.ID
				canonicalIDs[record.StandardName] = canonicalID
			}

			_, err := createSynonym(writer, canonicalID, record.Synonym)
			if errors.Is(err, ErrSynonymExists) {
				summary.Skipped++
				continue
			}
			if err != nil {
				return err
			}
			summary.Added++
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}

// Records returns every stored synonym with its canonical name in insertion
// order, optionally limited to one canonical name.
func (service *TransferService) Records(standardName string) ([]SynonymRecord, error) {
	standardName = strings.TrimSpace(standardName)

	records := make([]SynonymRecord, 0)
	err := service.store.Read(func(reader termstore.Reader) error {
		terms, err := reader.ListTermTexts()
		if err != nil {
			return storeFailure(err)
		}
		for _, term := range terms {
			if term.Kind != models.TermKindSynonym {
				continue
			}
			if standardName != "" && term.CanonicalName != standardName {
				continue
			}
			records = append(records, SynonymRecord{StandardName: term.CanonicalName, Synonym: term.Text})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Export writes Records as an indented JSON array. Non-ASCII text is written
// as is.
func (service *TransferService) Export(target io.Writer, standardName string) error {
	records, err := service.Records(standardName)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(target)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	return encoder.Encode(records)
}
