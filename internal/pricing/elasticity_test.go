package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optiprice/backend-go/internal/domain"
)

func TestElasticityForCategory(t *testing.T) {
	tests := []struct {
		category string
		want     float64
	}{
		{"Electronics", -2.1},
		{"Fashion", -1.8},
		{"Fitness", -1.5},
		{"Outdoor", -1.3},
		{"Home", -1.2},
		{"Sustainable", -0.8},
		{"Groceries", -1.5},
		{"", -1.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ElasticityForCategory(tt.category), "category %q", tt.category)
	}
}

func TestSensitivityIndex(t *testing.T) {
	assert.Equal(t, 0, SensitivityIndex(-2.1))
	assert.Equal(t, 1, SensitivityIndex(-2))
	assert.Equal(t, 1, SensitivityIndex(-1.2))
	assert.Equal(t, 2, SensitivityIndex(-1))
	assert.Equal(t, 2, SensitivityIndex(-0.8))
	assert.Equal(t, 3, SensitivityIndex(-0.5))
	assert.Equal(t, 3, SensitivityIndex(0))
}

func TestElasticityHeatmap(t *testing.T) {
	products := []domain.Product{
		{Name: "Laptop", Category: "Electronics"},
		{Name: "Tent", Category: "Outdoor"},
		{Name: "Phone", Category: "Electronics"},
		{Name: "Mystery"},
	}

	rows := ElasticityHeatmap(products)
	require.Len(t, rows, 3)

	// Categories appear in first-seen order.
	assert.Equal(t, "Electronics", rows[0].Category)
	assert.Equal(t, 2, rows[0].ProductCount)
	assert.Equal(t, -2.1, rows[0].Elasticity)
	assert.Equal(t, 0, rows[0].RangeIndex)
	assert.Contains(t, rows[0].Insight, "highly price-sensitive")

	assert.Equal(t, "Outdoor", rows[1].Category)
	assert.Equal(t, 1, rows[1].RangeIndex)

	// Empty categories are grouped under Unknown with the default elasticity.
	assert.Equal(t, "Unknown", rows[2].Category)
	assert.Equal(t, -1.5, rows[2].Elasticity)
}

func TestElasticityHeatmapEmptyCatalog(t *testing.T) {
	assert.Empty(t, ElasticityHeatmap(nil))
}
