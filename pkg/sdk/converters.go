package matchmaker

import "github.com/dealbridge/matchmaker/internal/domain"

func toInternalDeal(d Deal) domain.Deal {
	return domain.Deal{
		ID:        d.ID,
		Title:     d.Title,
		Stage:     d.Stage,
		Amount:    d.Amount,
		Sector:    d.Sector,
		Geography: d.Geography,
		Revenue:   d.Revenue,
		Ebitda:    d.Ebitda,
	}
}

func fromInternalDeal(d domain.Deal) Deal {
	return Deal{
		ID:        d.ID,
		Title:     d.Title,
		Stage:     d.Stage,
		Amount:    d.Amount,
		Sector:    d.Sector,
		Geography: d.Geography,
		Revenue:   d.Revenue,
		Ebitda:    d.Ebitda,
	}
}

func toInternalContact(c Contact) domain.Contact {
	return domain.Contact{
		ID:          c.ID,
		FullName:    c.FullName,
		CompanyName: c.CompanyName,
		Role:        c.Role,
		Email:       c.Email,
		Phone:       c.Phone,
		Tags:        c.Tags,
	}
}

func fromInternalContact(c domain.Contact) Contact {
	return Contact{
		ID:          c.ID,
		FullName:    c.FullName,
		CompanyName: c.CompanyName,
		Role:        c.Role,
		Email:       c.Email,
		Phone:       c.Phone,
		Tags:        c.Tags,
	}
}

func toInternalCriteria(contactID string, cr Criteria) domain.BuyerCriteria {
	return domain.BuyerCriteria{
		ContactID:    contactID,
		Sectors:      cr.Sectors,
		Geographies:  cr.Geographies,
		MinRevenue:   cr.MinRevenue,
		MaxRevenue:   cr.MaxRevenue,
		MinEbitda:    cr.MinEbitda,
		MaxEbitda:    cr.MaxEbitda,
		MinValuation: cr.MinValuation,
		MaxValuation: cr.MaxValuation,
		Notes:        cr.Notes,
	}
}

func fromInternalCriteria(bc domain.BuyerCriteria) Criteria {
	return Criteria{
		Sectors:      bc.Sectors,
		Geographies:  bc.Geographies,
		MinRevenue:   bc.MinRevenue,
		MaxRevenue:   bc.MaxRevenue,
		MinEbitda:    bc.MinEbitda,
		MaxEbitda:    bc.MaxEbitda,
		MinValuation: bc.MinValuation,
		MaxValuation: bc.MaxValuation,
		Notes:        bc.Notes,
	}
}

func fromInternalReport(r domain.ScoreReport) ScoreReport {
	out := ScoreReport{
		OverallScore:   r.OverallScore,
		Recommendation: r.Recommendation,
	}
	for _, cm := range r.CriteriaMatches {
		out.CriteriaMatches = append(out.CriteriaMatches, CriterionMatch{
			Criterion: cm.Criterion,
			Match:     cm.Match,
			Weight:    cm.Weight,
		})
	}
	return out
}

func fromInternalBuyerMatch(m domain.BuyerMatch) BuyerMatch {
	out := BuyerMatch{
		Score:   m.Score,
		Contact: fromInternalContact(m.Contact),
	}
	if m.Criteria != nil {
		cr := fromInternalCriteria(*m.Criteria)
		out.Criteria = &cr
	}
	if m.Report != nil {
		rep := fromInternalReport(*m.Report)
		out.Report = &rep
	}
	return out
}

func fromInternalDealMatch(m domain.DealMatch) DealMatch {
	return DealMatch{
		Score: m.Score,
		Deal:  fromInternalDeal(m.Deal),
	}
}
