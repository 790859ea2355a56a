package chi

import (
	"context"

	"github.com/dealbridge/matchmaker/internal/domain"
	healthuc "github.com/dealbridge/matchmaker/internal/usecase/health"
)

// DealStore is the deal persistence surface the API exposes.
type DealStore interface {
	Upsert(ctx context.Context, d domain.Deal) error
	Get(ctx context.Context, id string) (domain.Deal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Deal, error)
}

// ContactStore is the contact/criteria persistence surface.
type ContactStore interface {
	Upsert(ctx context.Context, c domain.Contact) error
	Get(ctx context.Context, id string) (domain.Contact, error)
	Delete(ctx context.Context, id string) error
	ListBuyers(ctx context.Context) ([]domain.Buyer, error)
	GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
	UpsertCriteria(ctx context.Context, bc domain.BuyerCriteria) error
	DeleteCriteria(ctx context.Context, contactID string) error
}

// Generator triggers embedding generation and cleanup.
type Generator interface {
	GenerateDeal(ctx context.Context, dealID string) error
	GenerateBuyer(ctx context.Context, contactID string) error
	DeleteTarget(ctx context.Context, targetID string, kind domain.Kind) error
}

// Matcher runs the vector-search pipeline in both directions.
type Matcher interface {
	FindMatchingBuyers(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	FindMatchingBuyersScored(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	FindMatchingDeals(ctx context.Context, contactID string) ([]domain.DealMatch, error)
}

// Scorer computes the deterministic pair score.
type Scorer interface {
	CalculateMatchScore(ctx context.Context, dealID, contactID string) (domain.ScoreReport, error)
}

// Explainer produces a one-sentence match rationale. Optional.
type Explainer interface {
	Explain(ctx context.Context, dealID, contactID string) (string, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
