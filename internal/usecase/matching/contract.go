package matching

import (
	"context"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// EmbeddingStore reads the vector store and runs nearest-neighbor search.
type EmbeddingStore interface {
	GetByTarget(ctx context.Context, targetID string, kind domain.Kind) (domain.Embedding, error)
	GetByID(ctx context.Context, id string) (domain.Embedding, error)
	SearchNearest(ctx context.Context, vector []float32, kind domain.Kind, k int) ([]domain.Neighbor, error)
}

// DealReader resolves candidate deals.
type DealReader interface {
	Get(ctx context.Context, id string) (domain.Deal, error)
}

// ContactReader resolves candidate contacts and their criteria.
type ContactReader interface {
	Get(ctx context.Context, id string) (domain.Contact, error)
	GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
}
