package store

import (
	"sort"
	"strings"

	"github.com/healthmart/storefront/internal/domain"
)

// Scoring weights for product similarity.
const (
	scoreCategoryMatch     = 2.0
	scoreManufacturerMatch = 1.0
	scoreSharedNameWord    = 0.5
)

// Related derives an ordered list of products similar to focal from the
// given catalog snapshot, with no network access. The focal product is never
// included; an empty snapshot yields an empty result, which is not an error.
//
// Score per candidate: +2 for an exact category match, +1 for an exact
// manufacturer match, +0.5 for each distinct case-insensitive word shared
// between the two names. Candidates sort by descending score; ties keep
// catalog order.
func Related(focal domain.Product, snapshot []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return nil
	}

	type scored struct {
		product domain.Product
		score   float64
	}

	focalWords := nameWords(focal.Name)

	candidates := make([]scored, 0, len(snapshot))
	for _, p := range snapshot {
		if p.ID == focal.ID {
			continue
		}
		candidates = append(candidates, scored{
			product: p,
			score:   similarity(focal, p, focalWords),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}
	out := make([]domain.Product, limit)
	for i := 0; i < limit; i++ {
		out[i] = candidates[i].product
	}
	return out
}

// similarity is the pure scoring function behind Related.
func similarity(focal, candidate domain.Product, focalWords map[string]struct{}) float64 {
	var score float64
	if focal.Category == candidate.Category {
		score += scoreCategoryMatch
	}
	if focal.Manufacturer == candidate.Manufacturer {
		score += scoreManufacturerMatch
	}
	for word := range nameWords(candidate.Name) {
		if _, ok := focalWords[word]; ok {
			score += scoreSharedNameWord
		}
	}
	return score
}

// nameWords splits a product name into its distinct lowercased
// whitespace-delimited words.
func nameWords(name string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(name)) {
		words[w] = struct{}{}
	}
	return words
}
