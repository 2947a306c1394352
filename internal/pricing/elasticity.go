package pricing

import (
	"fmt"

	"github.com/optiprice/backend-go/internal/domain"
)

// categoryElasticity maps catalog categories to assumed demand elasticities.
// These are presentation heuristics, not estimates from real price/demand
// pairs; unknown categories fall back to DefaultElasticity.
var categoryElasticity = map[string]float64{
	"Electronics": -2.1,
	"Fashion":     -1.8,
	"Fitness":     -1.5,
	"Outdoor":     -1.3,
	"Home":        -1.2,
	"Sustainable": -0.8,
}

// SensitivityRanges are the qualitative buckets, indexed by RangeIndex.
var SensitivityRanges = []string{
	"Very Elastic (< -2)",
	"Elastic (-2 to -1)",
	"Unit Elastic (-1 to -0.5)",
	"Inelastic (-0.5 to 0)",
}

// ElasticityForCategory resolves the assumed elasticity for a category.
func ElasticityForCategory(category string) float64 {
	if e, ok := categoryElasticity[category]; ok {
		return e
	}
	return DefaultElasticity
}

// SensitivityIndex buckets an elasticity value: 0 very elastic, 1 elastic,
// 2 unit elastic, 3 inelastic.
func SensitivityIndex(elasticity float64) int {
	switch {
	case elasticity < -2:
		return 0
	case elasticity < -1:
		return 1
	case elasticity < -0.5:
		return 2
	default:
		return 3
	}
}

// SensitivityClass is the human-readable bucket name.
func SensitivityClass(elasticity float64) string {
	switch SensitivityIndex(elasticity) {
	case 0:
		return "very elastic"
	case 1:
		return "elastic"
	case 2:
		return "unit elastic"
	default:
		return "inelastic"
	}
}

// ElasticityHeatmap aggregates a product set into one row per category, in
// first-seen order, with product counts and a templated insight per bucket.
func ElasticityHeatmap(products []domain.Product) []domain.HeatmapRow {
	var order []string
	counts := make(map[string]int)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "Unknown"
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	rows := make([]domain.HeatmapRow, 0, len(order))
	for _, category := range order {
		elasticity := ElasticityForCategory(category)
		rows = append(rows, domain.HeatmapRow{
			Category:     category,
			Elasticity:   round3(elasticity),
			RangeIndex:   SensitivityIndex(elasticity),
			ProductCount: counts[category],
			Insight:      elasticityInsight(category, elasticity),
		})
	}
	return rows
}

func elasticityInsight(category string, elasticity float64) string {
	switch SensitivityIndex(elasticity) {
	case 0:
		return fmt.Sprintf("%s products are highly price-sensitive. Consider competitive pricing strategies.", category)
	case 1:
		return fmt.Sprintf("%s products show elastic demand. Price changes will significantly affect sales.", category)
	case 2:
		return fmt.Sprintf("%s products have moderate price sensitivity. Balanced pricing approach recommended.", category)
	default:
		return fmt.Sprintf("%s products are price-insensitive. Premium pricing strategies may be effective.", category)
	}
}
