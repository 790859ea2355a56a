// Package scoring computes the deterministic weighted-criteria match
// between one deal and one buyer. It is independent of vector similarity
// and exists to make a match explainable.
package scoring

import (
	"math"
	"strings"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// Fixed criterion weights. Sector dominates, geography matters least.
const (
	weightSector    = 30
	weightRevenue   = 25
	weightEbitda    = 25
	weightGeography = 20
)

const neutralScore = 50

// Recommendation tier texts, keyed off fixed thresholds.
const (
	recNoCriteria = "No acquisition criteria defined for this buyer"
	recExcellent  = "Excellent match - contact with priority"
	recGood       = "Good match - worth exploring"
	recPartial    = "Partial match - verify criteria manually"
	recWeak       = "Weak match - does not meet core criteria"
)

// Score evaluates deal against criteria and returns a reproducible report.
// A criterion participates only when the buyer stated a preference for it;
// an unstated preference is excluded from both sides of the ratio rather
// than counted as a failure. Nil criteria or all-empty preferences score
// the neutral midpoint.
func Score(deal domain.Deal, criteria *domain.BuyerCriteria) domain.ScoreReport {
	if criteria == nil {
		return domain.ScoreReport{
			OverallScore:    neutralScore,
			CriteriaMatches: []domain.CriterionMatch{},
			Recommendation:  recNoCriteria,
		}
	}

	matches := []domain.CriterionMatch{}
	totalWeight := 0
	matchedWeight := 0

	record := func(criterion string, match bool, weight int) {
		matches = append(matches, domain.CriterionMatch{
			Criterion: criterion,
			Match:     match,
			Weight:    weight,
		})
		totalWeight += weight
		if match {
			matchedWeight += weight
		}
	}

	if len(criteria.Sectors) > 0 {
		record("sector", anySubstring(deal.Sector, criteria.Sectors), weightSector)
	}

	if criteria.MinRevenue != nil || criteria.MaxRevenue != nil {
		record("revenue", inRange(orZero(deal.Revenue), criteria.MinRevenue, criteria.MaxRevenue), weightRevenue)
	}

	if criteria.MinEbitda != nil || criteria.MaxEbitda != nil {
		record("ebitda", inRange(orZero(deal.Ebitda), criteria.MinEbitda, criteria.MaxEbitda), weightEbitda)
	}

	if len(criteria.Geographies) > 0 {
		record("geography", anySubstring(deal.Geography, criteria.Geographies), weightGeography)
	}

	overall := neutralScore
	if totalWeight > 0 {
		overall = int(math.Round(100 * float64(matchedWeight) / float64(totalWeight)))
	}

	return domain.ScoreReport{
		OverallScore:    overall,
		CriteriaMatches: matches,
		Recommendation:  recommendation(overall, totalWeight),
	}
}

func recommendation(score, totalWeight int) string {
	if totalWeight == 0 {
		return recNoCriteria
	}
	switch {
	case score >= 80:
		return recExcellent
	case score >= 60:
		return recGood
	case score >= 40:
		return recPartial
	default:
		return recWeak
	}
}

// anySubstring reports whether any wanted entry occurs, case-insensitively,
// inside the deal's text. An empty deal field matches nothing but the
// criterion still counts toward the total.
func anySubstring(text string, wanted []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range wanted {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// inRange checks value against optional inclusive bounds. A nil bound is
// unbounded on that side. An inverted range simply never matches.
func inRange(value float64, min, max *float64) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
