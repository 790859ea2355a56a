package matchmaker

import (
	"context"
	"fmt"
	"time"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// DealService manages deals and deal-side matching.
type DealService struct {
	c *Client
}

// MatchOption configures a matching request.
type MatchOption interface {
	applyMatch(*matchConfig)
}

type matchConfig struct {
	scored bool
}

type matchOptionFunc func(*matchConfig)

func (f matchOptionFunc) applyMatch(c *matchConfig) { f(c) }

// Scored attaches a deterministic criteria-score report to every candidate.
// The vector-similarity order is preserved.
func Scored() MatchOption {
	return matchOptionFunc(func(c *matchConfig) {
		c.scored = true
	})
}

// Upsert creates or replaces a deal.
func (s *DealService) Upsert(ctx context.Context, d Deal) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("deal.upsert", start, err) }()

	if err := s.c.deals.Upsert(ctx, toInternalDeal(d)); err != nil {
		return fmt.Errorf("upsert deal: %w", err)
	}
	return nil
}

// Get fetches a deal by id.
func (s *DealService) Get(ctx context.Context, id string) (_ Deal, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("deal.get", start, err) }()

	deal, err := s.c.deals.Get(ctx, id)
	if err != nil {
		return Deal{}, fmt.Errorf("get deal: %w", err)
	}
	return fromInternalDeal(deal), nil
}

// Delete removes a deal and its embedding.
func (s *DealService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("deal.delete", start, err) }()

	if err := s.c.deals.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	if err := s.c.generator.DeleteTarget(ctx, id, domain.KindDeal); err != nil {
		return fmt.Errorf("delete deal embedding: %w", err)
	}
	return nil
}

// List returns all deals.
func (s *DealService) List(ctx context.Context) (_ []Deal, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("deal.list", start, err) }()

	internal, err := s.c.deals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	deals := make([]Deal, 0, len(internal))
	for _, d := range internal {
		deals = append(deals, fromInternalDeal(d))
	}
	return deals, nil
}

// Embed generates (or refreshes) the deal's embedding vector.
func (s *DealService) Embed(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("deal.embed", start, err) }()

	if err := s.c.generator.GenerateDeal(ctx, id); err != nil {
		return fmt.Errorf("embed deal: %w", err)
	}
	return nil
}

// MatchBuyers returns buyer candidates for a deal in similarity order.
// An unembedded deal yields an empty list, not an error.
func (s *DealService) MatchBuyers(ctx context.Context, id string, opts ...MatchOption) (_ []BuyerMatch, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("deal.match", start, err) }()

	cfg := &matchConfig{}
	for _, o := range opts {
		o.applyMatch(cfg)
	}

	var internal []domain.BuyerMatch
	if cfg.scored {
		internal, err = s.c.matcher.FindMatchingBuyersScored(ctx, id)
	} else {
		internal, err = s.c.matcher.FindMatchingBuyers(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("match buyers: %w", err)
	}

	matches := make([]BuyerMatch, 0, len(internal))
	for _, m := range internal {
		matches = append(matches, fromInternalBuyerMatch(m))
	}
	return matches, nil
}
