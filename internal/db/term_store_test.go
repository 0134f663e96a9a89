package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
)

func openTermStoreForTest(t *testing.T) *TermStore {
	t.Helper()
	database := openTestDatabase(t, filepath.Join(t.TempDir(), "labunify-terms.db"))
	return NewTermStore(database)
}

type seededTerms struct {
	hemoglobin models.CanonicalName
	gramsLiter models.Unit
	gramsDeci  models.Unit
	conversion models.UnitConversion
}

func seedTerms(t *testing.T, store *TermStore) seededTerms {
	t.Helper()

	var seeded seededTerms
	err := store.Write(func(writer termstore.Writer) error {
		seeded.hemoglobin = models.CanonicalName{Name: "Гемоглобін"}
		if err := writer.CreateCanonicalName(&seeded.hemoglobin); err != nil {
			return err
		}
		for _, text := range []string{"Hb", "HGB"} {
			if err := writer.CreateSynonym(&models.Synonym{CanonicalNameID: seeded.hemoglobin.ID, Text: text}); err != nil {
				return err
			}
		}
		seeded.gramsLiter = models.Unit{CanonicalNameID: seeded.hemoglobin.ID, Name: "г/л", IsStandard: true}
		if err := writer.CreateUnit(&seeded.gramsLiter); err != nil {
			return err
		}
		seeded.gramsDeci = models.Unit{CanonicalNameID: seeded.hemoglobin.ID, Name: "г/дл"}
		if err := writer.CreateUnit(&seeded.gramsDeci); err != nil {
			return err
		}
		seeded.conversion = models.UnitConversion{
			CanonicalNameID: seeded.hemoglobin.ID,
			FromUnitID:      seeded.gramsLiter.ID,
			ToUnitID:        seeded.gramsDeci.ID,
			Formula:         "x / 10",
		}
		return writer.CreateConversion(&seeded.conversion)
	})
	if err != nil {
		t.Fatalf("seed terms: %v", err)
	}
	return seeded
}

func TestTermStoreReadsSeededTerms(t *testing.T) {
	store := openTermStoreForTest(t)
	seeded := seedTerms(t, store)

	err := store.Read(func(reader termstore.Reader) error {
		canonical, synonym, found, err := reader.FindSynonymExact("Hb")
		if err != nil {
			return err
		}
		if !found || canonical.ID != seeded.hemoglobin.ID || canonical.Name != "Гемоглобін" || synonym.Text != "Hb" {
			t.Fatalf("FindSynonymExact(Hb) = %+v %+v %v", canonical, synonym, found)
		}

		if _, _, found, err := reader.FindSynonymExact("hb"); err != nil || found {
			t.Fatalf("expected case-sensitive synonym lookup, found=%v err=%v", found, err)
		}

		texts, err := reader.ListTermTexts()
		if err != nil {
			return err
		}
		if len(texts) != 3 || texts[0].Kind != models.TermKindSynonym || texts[2].Kind != models.TermKindCanonical {
			t.Fatalf("unexpected term texts %#v", texts)
		}

		standard, found, err := reader.GetStandardUnit(seeded.hemoglobin.ID)
		if err != nil {
			return err
		}
		if !found || standard.ID != seeded.gramsLiter.ID || !standard.IsStandard {
			t.Fatalf("GetStandardUnit() = %+v %v", standard, found)
		}

		conversions, err := reader.ListConversions(seeded.hemoglobin.ID)
		if err != nil {
			return err
		}
		if len(conversions) != 1 || conversions[0].Formula != "x / 10" {
			t.Fatalf("unexpected conversions %#v", conversions)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
}

func TestTermStoreSharedSynonymResolvesToSmallestCanonicalName(t *testing.T) {
	store := openTermStoreForTest(t)

	err := store.Write(func(writer termstore.Writer) error {
		for _, name := range []string{"Beta", "Alpha"} {
			canonical := models.CanonicalName{Name: name}
			if err := writer.CreateCanonicalName(&canonical); err != nil {
				return err
			}
			if err := writer.CreateSynonym(&models.Synonym{CanonicalNameID: canonical.ID, Text: "HB"}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed shared synonym: %v", err)
	}

	err = store.Read(func(reader termstore.Reader) error {
		canonical, _, found, err := reader.FindSynonymExact("HB")
		if err != nil {
			return err
		}
		if !found || canonical.Name != "Alpha" {
			t.Fatalf("expected Alpha, got %+v", canonical)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
}

func TestTermStoreRejectsSecondStandardUnit(t *testing.T) {
	store := openTermStoreForTest(t)
	seeded := seedTerms(t, store)

	err := store.Write(func(writer termstore.Writer) error {
		return writer.CreateUnit(&models.Unit{CanonicalNameID: seeded.hemoglobin.ID, Name: "мг/мл", IsStandard: true})
	})
	if err == nil {
		t.Fatal("expected unique index to reject a second standard unit")
	}

	err = store.Write(func(writer termstore.Writer) error {
		if err := writer.ClearStandardUnit(seeded.hemoglobin.ID); err != nil {
			return err
		}
		return writer.CreateUnit(&models.Unit{CanonicalNameID: seeded.hemoglobin.ID, Name: "мг/мл", IsStandard: true})
	})
	if err != nil {
		t.Fatalf("expected standard unit swap to succeed, got %v", err)
	}
}

func TestTermStoreWriteRollsBackOnError(t *testing.T) {
	store := openTermStoreForTest(t)
	failure := errors.New("abort")

	err := store.Write(func(writer termstore.Writer) error {
		if err := writer.CreateCanonicalName(&models.CanonicalName{Name: "Глюкоза"}); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected callback error, got %v", err)
	}

	err = store.Read(func(reader termstore.Reader) error {
		_, found, err := reader.FindCanonicalExact("Глюкоза")
		if err != nil {
			return err
		}
		if found {
			t.Fatal("expected rolled back canonical name to be absent")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
}

func TestTermStoreDeleteUnitRemovesItsConversions(t *testing.T) {
	store := openTermStoreForTest(t)
	seeded := seedTerms(t, store)

	if err := store.Write(func(writer termstore.Writer) error {
		return writer.DeleteUnit(seeded.gramsDeci.ID)
	}); err != nil {
		t.Fatalf("DeleteUnit() unexpected error: %v", err)
	}

	err := store.Read(func(reader termstore.Reader) error {
		if _, found, err := reader.FindConversionByID(seeded.conversion.ID); err != nil || found {
			t.Fatalf("expected conversion to be deleted, found=%v err=%v", found, err)
		}
		units, err := reader.ListUnits(seeded.hemoglobin.ID)
		if err != nil {
			return err
		}
		if len(units) != 1 || units[0].ID != seeded.gramsLiter.ID {
			t.Fatalf("unexpected remaining units %#v", units)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
}
