// Package embedding turns deals and contacts into stored vectors: load the
// record, build its textual projection, call the embedding provider, upsert
// the result into the vector store.
package embedding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// Service generates and stores embeddings for both sides of the match.
type Service struct {
	store    Store
	deals    DealReader
	contacts ContactReader
	embedder Embedder
	logger   *zap.Logger
}

// New creates an embedding-generation service.
func New(store Store, deals DealReader, contacts ContactReader, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		deals:    deals,
		contacts: contacts,
		embedder: embedder,
		logger:   logger,
	}
}

// GenerateDeal embeds the deal's textual projection and upserts the vector.
func (s *Service) GenerateDeal(ctx context.Context, dealID string) error {
	deal, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return fmt.Errorf("get deal: %w", err)
	}
	return s.generate(ctx, dealID, domain.KindDeal, dealText(deal))
}

// GenerateBuyer embeds the contact's textual projection, folding in criteria
// when the contact has them, and upserts the vector.
func (s *Service) GenerateBuyer(ctx context.Context, contactID string) error {
	contact, err := s.contacts.Get(ctx, contactID)
	if err != nil {
		return fmt.Errorf("get contact: %w", err)
	}

	var criteria *domain.BuyerCriteria
	bc, err := s.contacts.GetCriteria(ctx, contactID)
	switch {
	case err == nil:
		criteria = &bc
	case errors.Is(err, domain.ErrCriteriaNotFound):
		// plain contact, embedded without criteria context
	default:
		return fmt.Errorf("get criteria: %w", err)
	}

	return s.generate(ctx, contactID, domain.KindBuyer, buyerText(contact, criteria))
}

// DeleteTarget removes the stored embedding for a deleted entity. A no-op
// when the entity was never embedded.
func (s *Service) DeleteTarget(ctx context.Context, targetID string, kind domain.Kind) error {
	if err := s.store.DeleteByTarget(ctx, targetID, kind); err != nil {
		return fmt.Errorf("delete embedding: %w", err)
	}
	return nil
}

func (s *Service) generate(ctx context.Context, targetID string, kind domain.Kind, text string) error {
	result, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}

	if err := s.store.Upsert(ctx, targetID, kind, result.Embedding); err != nil {
		return fmt.Errorf("upsert embedding: %w", err)
	}

	s.logger.Debug("Embedding stored",
		zap.String("target_id", targetID),
		zap.String("kind", string(kind)),
		zap.Int("dimensions", len(result.Embedding)),
		zap.Int("total_tokens", result.TotalTokens),
	)
	return nil
}
