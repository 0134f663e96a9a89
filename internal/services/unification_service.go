package services

import (
	"errors"
	"math"
	"sort"

	"github.com/terraincognita07/labunify/internal/fuzzy"
	"github.com/terraincognita07/labunify/internal/metrics"
	"github.com/terraincognita07/labunify/internal/models"
	"github.com/terraincognita07/labunify/internal/termstore"
)

var ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")

type ResolutionStatus string

const (
	StatusMatched  ResolutionStatus = "matched"
	StatusNotFound ResolutionStatus = "not_found"
)

type MatchTier string

const (
	TierExactSynonym   MatchTier = "exact_synonym"
	TierExactCanonical MatchTier = "exact_canonical"
	TierFuzzy          MatchTier = "fuzzy"
	TierPartial        MatchTier = "partial"
	TierNone           MatchTier = "none"
)

type ResolutionResult struct {
	Status    ResolutionStatus
	Input     string
	Canonical models.CanonicalName
	Tier      MatchTier
	Matched   string
	Score     float64
}

func (result ResolutionResult) Found() bool {
	return result.Status == StatusMatched
}

type UnificationService struct {
	store termstore.Store
}

func NewUnificationService(store termstore.Store) *UnificationService {
	return &UnificationService{store: store}
}

// Resolve maps input to a canonical name. Exact synonym and exact canonical
// matches win regardless of threshold; otherwise the best whole-string score
// over synonyms and canonical names, then the best partial score over
// canonical names, must reach threshold. No match is reported through the
// result status, not as an error.
func (service *UnificationService) Resolve(input string, threshold float64) (ResolutionResult, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > fuzzy.MaxScore {
		return ResolutionResult{}, ErrInvalidThreshold
	}

	result := ResolutionResult{Status: StatusNotFound, Input: input, Tier: TierNone}
	err := service.store.Read(func(reader termstore.Reader) error {
		resolved, err := resolveWithReader(reader, input, threshold)
		if err != nil {
			return err
		}
		result = resolved
		return nil
	})
	if err != nil {
		return ResolutionResult{}, err
	}

	metrics.ObserveResolution(string(result.Tier))
	return result, nil
}

func resolveWithReader(reader termstore.Reader, input string, threshold float64) (ResolutionResult, error) {
	canonical, _, found, err := reader.FindSynonymExact(input)
	if err != nil {
		return ResolutionResult{}, err
	}
	if found {
		return matched(input, canonical, TierExactSynonym, input, fuzzy.MaxScore), nil
	}

	canonical, found, err = reader.FindCanonicalExact(input)
	if err != nil {
		return ResolutionResult{}, err
	}
	if found {
		return matched(input, canonical, TierExactCanonical, input, fuzzy.MaxScore), nil
	}

	pool, err := reader.ListTermTexts()
	if err != nil {
		return ResolutionResult{}, err
	}

	if best, ok := bestCandidate(input, pool, fuzzy.Ratio); ok && best.score >= threshold {
		return matched(input, best.owner(), TierFuzzy, best.term.Text, best.score), nil
	}

	canonicalPool := make([]models.TermText, 0, len(pool))
	for _, term := range pool {
		if term.Kind == models.TermKindCanonical {
			canonicalPool = append(canonicalPool, term)
		}
	}
	if best, ok := bestCandidate(input, canonicalPool, fuzzy.PartialRatio); ok && best.score >= threshold {
		return matched(input, best.owner(), TierPartial, best.term.Text, best.score), nil
	}

	return ResolutionResult{Status: StatusNotFound, Input: input, Tier: TierNone}, nil
}

func matched(input string, canonical models.CanonicalName, tier MatchTier, text string, score float64) ResolutionResult {
	return ResolutionResult{
		Status:    StatusMatched,
		Input:     input,
		Canonical: canonical,
		Tier:      tier,
		Matched:   text,
		Score:     score,
	}
}

type scoredTerm struct {
	term  models.TermText
	score float64
}

func (candidate scoredTerm) owner() models.CanonicalName {
	return models.CanonicalName{ID: candidate.term.CanonicalNameID, Name: candidate.term.CanonicalName}
}

// bestCandidate returns the highest scoring term. Ties go to the smallest
// text, then canonical names before synonyms, then the smallest owner name.
func bestCandidate(input string, pool []models.TermText, scorer func(string, string) float64) (scoredTerm, bool) {
	if len(pool) == 0 {
		return scoredTerm{}, false
	}

	scored := make([]scoredTerm, 0, len(pool))
	for _, term := range pool {
		scored = append(scored, scoredTerm{term: term, score: scorer(input, term.Text)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		left, right := scored[i], scored[j]
		if left.score != right.score {
			return left.score > right.score
		}
		if left.term.Text != right.term.Text {
			return left.term.Text < right.term.Text
		}
		if left.term.Kind != right.term.Kind {
			return left.term.Kind == models.TermKindCanonical
		}
		return left.term.CanonicalName < right.term.CanonicalName
	})
	return scored[0], true
}
