package scoring

import (
	"context"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// DealReader resolves deal records.
type DealReader interface {
	Get(ctx context.Context, id string) (domain.Deal, error)
}

// ContactReader resolves contacts and their buyer criteria.
type ContactReader interface {
	Get(ctx context.Context, id string) (domain.Contact, error)
	GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
}
