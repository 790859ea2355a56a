package matchmaker

// Deal is a sell-side mandate. Sector, geography, revenue and EBITDA are
// optional: a deal is matchable before its profile is complete.
type Deal struct {
	ID        string
	Title     string
	Stage     string
	Amount    int64 // smallest currency unit
	Sector    string
	Geography string
	Revenue   *float64
	Ebitda    *float64
}

// Contact is a prospective acquirer.
type Contact struct {
	ID          string
	FullName    string
	CompanyName string
	Role        string
	Email       string
	Phone       string
	Tags        []string
}

// Criteria are a contact's stated acquisition preferences. Every field is
// optional; an all-empty record scores neutral rather than failing.
type Criteria struct {
	Sectors      []string
	Geographies  []string
	MinRevenue   *float64
	MaxRevenue   *float64
	MinEbitda    *float64
	MaxEbitda    *float64
	MinValuation *float64
	MaxValuation *float64
	Notes        string
}

// Buyer is a contact joined with its criteria.
type Buyer struct {
	Contact  Contact
	Criteria Criteria
}

// CriterionMatch records the outcome of a single weighted criterion.
type CriterionMatch struct {
	Criterion string
	Match     bool
	Weight    int
}

// ScoreReport is the deterministic criteria-scoring result for one
// (deal, buyer) pair. OverallScore is a percentage in [0, 100].
type ScoreReport struct {
	OverallScore    int
	CriteriaMatches []CriterionMatch
	Recommendation  string
}

// BuyerMatch is one candidate buyer for a deal, in vector-similarity order.
// Report is only set when scoring was requested; it never re-sorts the list.
type BuyerMatch struct {
	Score    float64
	Contact  Contact
	Criteria *Criteria
	Report   *ScoreReport
}

// DealMatch is one candidate deal for a buyer.
type DealMatch struct {
	Score float64
	Deal  Deal
}
