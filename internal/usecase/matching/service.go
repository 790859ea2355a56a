// Package matching runs the vector-search pipeline: fetch the source
// embedding, search the opposite-kind vector space, resolve hits back to
// full records. Ordering is governed by vector similarity throughout;
// criteria scores are attached as explanation, never used to re-sort.
package matching

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/domain"
	"github.com/dealbridge/matchmaker/internal/metrics"
	"github.com/dealbridge/matchmaker/internal/usecase/scoring"
)

// DefaultTopK caps the candidate list per matchmaking request.
const DefaultTopK = 10

// Service orchestrates deal→buyer and buyer→deal matching.
type Service struct {
	embeddings EmbeddingStore
	deals      DealReader
	contacts   ContactReader
	topK       int
	logger     *zap.Logger
}

// New creates a matching service. topK <= 0 falls back to DefaultTopK.
func New(embeddings EmbeddingStore, deals DealReader, contacts ContactReader, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		embeddings: embeddings,
		deals:      deals,
		contacts:   contacts,
		topK:       topK,
		logger:     logger,
	}
}

// FindMatchingBuyers returns up to topK buyers similar to the deal, in
// descending vector-similarity order. A deal without an embedding has no
// matches yet and yields an empty list, not an error.
func (s *Service) FindMatchingBuyers(ctx context.Context, dealID string) ([]domain.BuyerMatch, error) {
	neighbors, err := s.searchOpposite(ctx, dealID, domain.KindDeal)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("deal_to_buyer", "error").Inc()
		return nil, err
	}

	matches := make([]domain.BuyerMatch, 0, len(neighbors))
	for _, n := range neighbors {
		contact, criteria, ok := s.resolveBuyer(ctx, n.EmbeddingID)
		if !ok {
			metrics.MatchCandidatesDropped.Inc()
			continue
		}
		matches = append(matches, domain.BuyerMatch{
			Score:    n.Score,
			Contact:  contact,
			Criteria: criteria,
		})
	}

	metrics.MatchRequestsTotal.WithLabelValues("deal_to_buyer", "ok").Inc()
	return matches, nil
}

// FindMatchingBuyersScored runs FindMatchingBuyers and attaches the
// deterministic criteria report to each candidate. Ordering is unchanged.
func (s *Service) FindMatchingBuyersScored(ctx context.Context, dealID string) ([]domain.BuyerMatch, error) {
	matches, err := s.FindMatchingBuyers(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return matches, nil
	}

	deal, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("get deal: %w", err)
	}

	for i := range matches {
		report := scoring.Score(deal, matches[i].Criteria)
		matches[i].Report = &report
	}
	return matches, nil
}

// FindMatchingDeals returns up to topK deals similar to the contact's
// buyer profile, in descending vector-similarity order.
func (s *Service) FindMatchingDeals(ctx context.Context, contactID string) ([]domain.DealMatch, error) {
	neighbors, err := s.searchOpposite(ctx, contactID, domain.KindBuyer)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("buyer_to_deal", "error").Inc()
		return nil, err
	}

	matches := make([]domain.DealMatch, 0, len(neighbors))
	for _, n := range neighbors {
		deal, ok := s.resolveDeal(ctx, n.EmbeddingID)
		if !ok {
			metrics.MatchCandidatesDropped.Inc()
			continue
		}
		matches = append(matches, domain.DealMatch{Score: n.Score, Deal: deal})
	}

	metrics.MatchRequestsTotal.WithLabelValues("buyer_to_deal", "ok").Inc()
	return matches, nil
}

// searchOpposite resolves the source embedding and searches the opposite
// vector space. An unembedded source returns (nil, nil).
func (s *Service) searchOpposite(ctx context.Context, sourceID string, sourceKind domain.Kind) ([]domain.Neighbor, error) {
	source, err := s.embeddings.GetByTarget(ctx, sourceID, sourceKind)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get source embedding: %w", err)
	}

	neighbors, err := s.embeddings.SearchNearest(ctx, source.Vector, sourceKind.Opposite(), s.topK)
	if err != nil {
		return nil, fmt.Errorf("search nearest: %w", err)
	}
	return neighbors, nil
}

// resolveBuyer maps a search hit to a contact plus optional criteria.
// Any unresolvable link means the candidate is stale and gets dropped.
func (s *Service) resolveBuyer(ctx context.Context, embeddingID string) (domain.Contact, *domain.BuyerCriteria, bool) {
	emb, err := s.embeddings.GetByID(ctx, embeddingID)
	if err != nil {
		s.dropCandidate(embeddingID, "embedding", err)
		return domain.Contact{}, nil, false
	}

	contact, err := s.contacts.Get(ctx, emb.TargetID)
	if err != nil {
		s.dropCandidate(embeddingID, "contact", err)
		return domain.Contact{}, nil, false
	}

	var criteria *domain.BuyerCriteria
	bc, err := s.contacts.GetCriteria(ctx, emb.TargetID)
	if err == nil {
		criteria = &bc
	}
	return contact, criteria, true
}

func (s *Service) resolveDeal(ctx context.Context, embeddingID string) (domain.Deal, bool) {
	emb, err := s.embeddings.GetByID(ctx, embeddingID)
	if err != nil {
		s.dropCandidate(embeddingID, "embedding", err)
		return domain.Deal{}, false
	}

	deal, err := s.deals.Get(ctx, emb.TargetID)
	if err != nil {
		s.dropCandidate(embeddingID, "deal", err)
		return domain.Deal{}, false
	}
	return deal, true
}

func (s *Service) dropCandidate(embeddingID, stage string, err error) {
	s.logger.Debug("Dropping unresolvable candidate",
		zap.String("embedding_id", embeddingID),
		zap.String("stage", stage),
		zap.Error(err),
	)
}
