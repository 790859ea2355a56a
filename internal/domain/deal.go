package domain

// Deal is a sell-side mandate as seen by the matchmaker. Sector, geography,
// revenue and EBITDA are optional: deals are matchable before their profile
// is complete.
type Deal struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Stage     string   `json:"stage"`
	Amount    int64    `json:"amount"` // smallest currency unit
	Sector    string   `json:"sector,omitempty"`
	Geography string   `json:"geography,omitempty"`
	Revenue   *float64 `json:"revenue,omitempty"`
	Ebitda    *float64 `json:"ebitda,omitempty"`
}
