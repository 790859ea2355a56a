package embedding

import (
	"context"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// Store persists embedding vectors keyed by target.
type Store interface {
	Upsert(ctx context.Context, targetID string, kind domain.Kind, vector []float32) error
	DeleteByTarget(ctx context.Context, targetID string, kind domain.Kind) error
}

// DealReader resolves deal records for projection.
type DealReader interface {
	Get(ctx context.Context, id string) (domain.Deal, error)
}

// ContactReader resolves contacts and criteria for projection.
type ContactReader interface {
	Get(ctx context.Context, id string) (domain.Contact, error)
	GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
