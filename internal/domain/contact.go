package domain

// Contact is a prospective acquirer. A contact becomes a buyer in the
// matching sense once BuyerCriteria exist for it; the embedding pipeline
// accepts contacts either way.
type Contact struct {
	ID          string   `json:"id"`
	FullName    string   `json:"full_name"`
	CompanyName string   `json:"company_name,omitempty"`
	Role        string   `json:"role,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Buyer is a contact joined with its criteria, the shape the buyer
// listing returns.
type Buyer struct {
	Contact  Contact       `json:"contact"`
	Criteria BuyerCriteria `json:"criteria"`
}

// BuyerCriteria are a contact's stated acquisition preferences, 1:1 by
// contact id. Every field is optional: an all-empty record is a valid
// "no preference" profile and scores neutral rather than failing.
type BuyerCriteria struct {
	ContactID    string   `json:"contact_id"`
	Sectors      []string `json:"sectors,omitempty"`
	Geographies  []string `json:"geographies,omitempty"`
	MinRevenue   *float64 `json:"min_revenue,omitempty"`
	MaxRevenue   *float64 `json:"max_revenue,omitempty"`
	MinEbitda    *float64 `json:"min_ebitda,omitempty"`
	MaxEbitda    *float64 `json:"max_ebitda,omitempty"`
	MinValuation *float64 `json:"min_valuation,omitempty"` // persisted, not scored
	MaxValuation *float64 `json:"max_valuation,omitempty"` // persisted, not scored
	Notes        string   `json:"notes,omitempty"`
}
