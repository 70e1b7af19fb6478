package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmart/storefront/internal/domain"
)

func TestRelated_ScoringOrder(t *testing.T) {
	focal := domain.Product{ID: "f", Category: "Pain Relief", Manufacturer: "Acme", Name: "Acme Pain Tablet"}
	a := domain.Product{ID: "a", Category: "Pain Relief", Manufacturer: "Acme", Name: "Acme Pain Gel"}
	b := domain.Product{ID: "b", Category: "Vitamins", Manufacturer: "Other", Name: "Daily Vitamin C"}

	// a: category +2, manufacturer +1, shared words "acme" and "pain" +1.0
	assert.InDelta(t, 4.0, similarity(focal, a, nameWords(focal.Name)), 1e-9)
	// b: nothing in common
	assert.InDelta(t, 0.0, similarity(focal, b, nameWords(focal.Name)), 1e-9)

	got := Related(focal, []domain.Product{b, a, focal}, 4)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID, "higher score ranks first")
	assert.Equal(t, "b", got[1].ID)
}

func TestRelated_ExcludesFocalProduct(t *testing.T) {
	snapshot := testProducts()
	focal := snapshot[0]

	got := Related(focal, snapshot, 10)
	for _, p := range got {
		assert.NotEqual(t, focal.ID, p.ID)
	}
	assert.Len(t, got, len(snapshot)-1)
}

func TestRelated_EmptySnapshot(t *testing.T) {
	focal := domain.Product{ID: "f"}

	assert.Empty(t, Related(focal, nil, 4))
	assert.Empty(t, Related(focal, []domain.Product{focal}, 4), "snapshot holding only the focal product")
}

func TestRelated_TiesKeepCatalogOrder(t *testing.T) {
	focal := domain.Product{ID: "f", Category: "Sleep", Manufacturer: "Zed", Name: "Night Formula"}
	// Both candidates score identically (category match only).
	c1 := domain.Product{ID: "c1", Category: "Sleep", Manufacturer: "A", Name: "Rest Aid"}
	c2 := domain.Product{ID: "c2", Category: "Sleep", Manufacturer: "B", Name: "Dream Aid"}

	got := Related(focal, []domain.Product{c1, c2}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c2", got[1].ID)

	// Swapping catalog order swaps the tie outcome.
	got = Related(focal, []domain.Product{c2, c1}, 2)
	assert.Equal(t, "c2", got[0].ID)
}

func TestRelated_LimitCapsResults(t *testing.T) {
	snapshot := testProducts()
	focal := snapshot[0]

	got := Related(focal, snapshot, 2)
	assert.Len(t, got, 2)

	assert.Empty(t, Related(focal, snapshot, 0))
}

func TestRelated_RepeatedNameWordsCountOnce(t *testing.T) {
	focal := domain.Product{ID: "f", Category: "X", Manufacturer: "M1", Name: "Extra Extra Strength"}
	candidate := domain.Product{ID: "c", Category: "Y", Manufacturer: "M2", Name: "Extra Mild"}

	// Only the distinct word "extra" is shared: one +0.5 bump.
	assert.InDelta(t, 0.5, similarity(focal, candidate, nameWords(focal.Name)), 1e-9)
}
