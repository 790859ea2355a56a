package domain

// BuyerMatch is one candidate buyer for a deal, in vector-similarity order.
// Report is only populated when the caller asked for criteria scoring; it is
// explanatory and never re-sorts the list.
type BuyerMatch struct {
	Score    float64        `json:"score"`
	Contact  Contact        `json:"contact"`
	Criteria *BuyerCriteria `json:"criteria,omitempty"`
	Report   *ScoreReport   `json:"report,omitempty"`
}

// DealMatch is one candidate deal for a buyer.
type DealMatch struct {
	Score float64 `json:"score"`
	Deal  Deal    `json:"deal"`
}

// CriterionMatch records the outcome of a single weighted criterion.
type CriterionMatch struct {
	Criterion string `json:"criterion"`
	Match     bool   `json:"match"`
	Weight    int    `json:"weight"`
}

// ScoreReport is the deterministic criteria-scoring result for one
// (deal, buyer) pair. OverallScore is a percentage in [0, 100].
type ScoreReport struct {
	OverallScore    int              `json:"overall_score"`
	CriteriaMatches []CriterionMatch `json:"criteria_matches"`
	Recommendation  string           `json:"recommendation"`
}
