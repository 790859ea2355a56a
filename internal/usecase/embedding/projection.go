package embedding

import (
	"strconv"
	"strings"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// dealText builds the textual projection a deal is embedded from. The
// first three lines are always present; optional profile fields append
// lines only when set, so an unchanged profile produces identical text
// (and an embedding-cache hit).
func dealText(d domain.Deal) string {
	var b strings.Builder
	b.WriteString("Title: " + d.Title)
	b.WriteString("\nStage: " + d.Stage)
	b.WriteString("\nAmount: " + strconv.FormatInt(d.Amount, 10))

	if d.Sector != "" {
		b.WriteString("\nSector: " + d.Sector)
	}
	if d.Geography != "" {
		b.WriteString("\nGeography: " + d.Geography)
	}
	if d.Revenue != nil {
		b.WriteString("\nRevenue: " + formatNum(*d.Revenue))
	}
	if d.Ebitda != nil {
		b.WriteString("\nEBITDA: " + formatNum(*d.Ebitda))
	}
	return b.String()
}

// buyerText builds the textual projection for a contact, folding in its
// acquisition criteria when present.
func buyerText(c domain.Contact, criteria *domain.BuyerCriteria) string {
	var b strings.Builder
	b.WriteString("Buyer: " + c.FullName)
	if c.CompanyName != "" {
		b.WriteString("\nCompany: " + c.CompanyName)
	}
	if c.Role != "" {
		b.WriteString("\nRole: " + c.Role)
	}
	if len(c.Tags) > 0 {
		b.WriteString("\nTags: " + strings.Join(c.Tags, ", "))
	}

	if criteria == nil {
		return b.String()
	}

	if len(criteria.Sectors) > 0 {
		b.WriteString("\nTarget sectors: " + strings.Join(criteria.Sectors, ", "))
	}
	if len(criteria.Geographies) > 0 {
		b.WriteString("\nTarget geographies: " + strings.Join(criteria.Geographies, ", "))
	}
	if r := rangeText(criteria.MinRevenue, criteria.MaxRevenue); r != "" {
		b.WriteString("\nRevenue range: " + r)
	}
	if r := rangeText(criteria.MinEbitda, criteria.MaxEbitda); r != "" {
		b.WriteString("\nEBITDA range: " + r)
	}
	if criteria.Notes != "" {
		b.WriteString("\nNotes: " + criteria.Notes)
	}
	return b.String()
}

func rangeText(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return formatNum(*min) + " to " + formatNum(*max)
	case min != nil:
		return "from " + formatNum(*min)
	case max != nil:
		return "up to " + formatNum(*max)
	default:
		return ""
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
