package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// Service exposes pair scoring over stored records.
type Service struct {
	deals    DealReader
	contacts ContactReader
}

// New creates a scoring service.
func New(deals DealReader, contacts ContactReader) *Service {
	return &Service{deals: deals, contacts: contacts}
}

// CalculateMatchScore resolves both records and scores the pair. Both the
// deal and the contact must exist; missing criteria degrade to the neutral
// report instead of failing.
func (s *Service) CalculateMatchScore(ctx context.Context, dealID, contactID string) (domain.ScoreReport, error) {
	deal, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return domain.ScoreReport{}, fmt.Errorf("get deal: %w", err)
	}

	if _, err := s.contacts.Get(ctx, contactID); err != nil {
		return domain.ScoreReport{}, fmt.Errorf("get contact: %w", err)
	}

	var criteria *domain.BuyerCriteria
	bc, err := s.contacts.GetCriteria(ctx, contactID)
	switch {
	case err == nil:
		criteria = &bc
	case errors.Is(err, domain.ErrCriteriaNotFound):
		// scored as neutral
	default:
		return domain.ScoreReport{}, fmt.Errorf("get criteria: %w", err)
	}

	return Score(deal, criteria), nil
}
